package accounts

import (
	"context"

	"github.com/arbrands/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes account persistence: the credential store behind
// registration, login, and token re-resolution.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an accounts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account and returns the persisted model. The unique
// index on email is the final arbiter of duplicates; callers translate the
// violation into a Conflict.
func (r *Repository) Create(ctx context.Context, dto CreateAccountDTO) (*models.Account, error) {
	account := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// FindByEmail retrieves the account matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID loads an account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
