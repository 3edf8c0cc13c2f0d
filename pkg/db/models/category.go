package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Name and slug are both unique.
type Category struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	Slug string    `gorm:"column:slug;type:text;not null;uniqueIndex"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
