package accounts

import (
	"time"

	"github.com/arbrands/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AccountDTO is the transport shape that omits the credential digest.
type AccountDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountDTO holds the data required by the repo to persist a new account.
type CreateAccountDTO struct {
	Email        string
	PasswordHash string
	IsAdmin      bool
}

func FromModel(a *models.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID,
		Email:     a.Email,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}

func (c CreateAccountDTO) ToModel() *models.Account {
	return &models.Account{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		IsAdmin:      c.IsAdmin,
	}
}
