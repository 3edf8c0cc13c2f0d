package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents the canonical identity record. Accounts are created by
// registration and never mutated or deleted by the storefront core.
type Account struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Account) TableName() string { return "accounts" }

// BeforeCreate assigns the id app-side so the schema works on both drivers.
func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
