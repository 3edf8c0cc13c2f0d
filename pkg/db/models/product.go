package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/arbrands/storefront-backend/pkg/db/types"
)

// Product is a catalog listing. CategoryID is a weak reference: deleting a
// category leaves the id dangling and reads join to a null category.
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name        string             `gorm:"column:name;type:text;not null"`
	Description *string            `gorm:"column:description;type:text"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	CategoryID  *uuid.UUID         `gorm:"column:category_id;type:uuid"`
	Images      dbtypes.StringList `gorm:"column:images;type:text;not null;default:'[]'"`
	Sizes       dbtypes.StringList `gorm:"column:sizes;type:text;not null;default:'[]'"`
	Colors      dbtypes.StringList `gorm:"column:colors;type:text;not null;default:'[]'"`
	IsAvailable bool               `gorm:"column:is_available;not null;default:true"`
	IsFeatured  bool               `gorm:"column:is_featured;not null;default:false"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
