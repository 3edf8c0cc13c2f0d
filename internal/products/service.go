package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbrands/storefront-backend/pkg/db/models"
	dbtypes "github.com/arbrands/storefront-backend/pkg/db/types"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the product operations exposed to controllers. Reads are
// public; mutations sit behind the admin gate.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs a product service bound to the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	dto, err := s.repo.GetWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return dto, nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	if req.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		Images:      listOrEmpty(req.Images),
		Sizes:       listOrEmpty(req.Sizes),
		Colors:      listOrEmpty(req.Colors),
		IsAvailable: true,
		IsFeatured:  false,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return s.reload(ctx, created.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}

	if req.Price != nil && req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	// Absent keeps the previous category; only an explicit null detaches it.
	if req.CategoryID.Valid {
		product.CategoryID = req.CategoryID.Value
	}
	if req.Images != nil {
		product.Images = dbtypes.StringList(req.Images)
	}
	if req.Sizes != nil {
		product.Sizes = dbtypes.StringList(req.Sizes)
	}
	if req.Colors != nil {
		product.Colors = dbtypes.StringList(req.Colors)
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.reload(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	dto, err := s.repo.GetWithCategory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return dto, nil
}

func listOrEmpty(values []string) dbtypes.StringList {
	if values == nil {
		return dbtypes.StringList{}
	}
	return dbtypes.StringList(values)
}
