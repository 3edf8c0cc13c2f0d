package products

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/arbrands/storefront-backend/pkg/db/models"
	dbtypes "github.com/arbrands/storefront-backend/pkg/db/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository wires together product persistence, including the filtered
// browse query.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var productSelectColumns = strings.Join([]string{
	"p.id",
	"p.name",
	"p.description",
	"p.price",
	"p.category_id",
	"p.images",
	"p.sizes",
	"p.colors",
	"p.is_available",
	"p.is_featured",
	"p.created_at",
	"p.updated_at",
	"c.name AS category_name",
	"c.slug AS category_slug",
}, ", ")

// List composes the optional filters into one bounded query. Every filter
// value is a bound parameter; nothing from the request is interpolated into
// the query text. Ordering is newest-created-first with id as tiebreaker so
// results stay deterministic.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(productSelectColumns).
		Joins("LEFT JOIN categories c ON c.id = p.category_id")

	if filters.CategoryID != nil {
		qb = qb.Where("p.category_id = ?", *filters.CategoryID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(COALESCE(p.description, '')) LIKE ?)", pattern, pattern)
	}
	// Inclusive bounds; min above max simply yields an empty set.
	if filters.MinPrice != nil {
		qb = qb.Where("p.price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("p.price <= ?", *filters.MaxPrice)
	}
	if filters.FeaturedOnly {
		qb = qb.Where("p.is_featured = ?", true)
	}
	if filters.AvailableOnly {
		qb = qb.Where("p.is_available = ?", true)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC")

	var records []productRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	out := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out, nil
}

// GetWithCategory fetches one product with its joined category fields.
func (r *Repository) GetWithCategory(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	var records []productRecord
	err := r.db.WithContext(ctx).
		Table("products p").
		Select(productSelectColumns).
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("p.id = ?", id).
		Limit(1).
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	dto := records[0].toDTO()
	return &dto, nil
}

// FindByID loads the raw product row without the category join.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves an existing product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

type productRecord struct {
	ID           uuid.UUID
	Name         string
	Description  sql.NullString
	Price        decimal.Decimal
	CategoryID   *uuid.UUID
	Images       dbtypes.StringList
	Sizes        dbtypes.StringList
	Colors       dbtypes.StringList
	IsAvailable  bool
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName sql.NullString
	CategorySlug sql.NullString
}

func (r productRecord) toDTO() ProductDTO {
	return ProductDTO{
		ID:           r.ID,
		Name:         r.Name,
		Description:  nullStringPtr(r.Description),
		Price:        r.Price,
		CategoryID:   r.CategoryID,
		CategoryName: nullStringPtr(r.CategoryName),
		CategorySlug: nullStringPtr(r.CategorySlug),
		Images:       []string(r.Images),
		Sizes:        []string(r.Sizes),
		Colors:       []string(r.Colors),
		IsAvailable:  r.IsAvailable,
		IsFeatured:   r.IsFeatured,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
