package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbrands/storefront-backend/pkg/db"
	"github.com/arbrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateCategoryMessage = "category with this name or slug already exists"

// Service defines the category operations exposed to controllers. Mutations
// are reachable only behind the admin gate.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	Create(ctx context.Context, req UpsertCategoryRequest) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs a category service bound to the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category), nil
}

func (s *service) Create(ctx context.Context, req UpsertCategoryRequest) (*CategoryDTO, error) {
	if err := s.checkDuplicate(ctx, req, nil); err != nil {
		return nil, err
	}

	category, err := s.repo.Create(ctx, &models.Category{Name: req.Name, Slug: req.Slug})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateCategoryMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return FromModel(category), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (*CategoryDTO, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, req, &id); err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = req.Slug
	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateCategoryMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return category, nil
}

func (s *service) checkDuplicate(ctx context.Context, req UpsertCategoryRequest, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByNameOrSlug(ctx, req.Name, req.Slug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category uniqueness")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, duplicateCategoryMessage)
	}
	return nil
}
