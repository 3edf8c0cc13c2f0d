package categories

import (
	"context"

	"github.com/arbrands/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all categories ordered by name ascending.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads a category by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByNameOrSlug reports whether another category already claims the
// name or slug. excludeID skips the category being updated.
func (r *Repository) ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ? OR slug = ?", name, slug)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the category row.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by ID. Products referencing it keep their
// dangling category_id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}
