package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arbrands/storefront-backend/internal/accounts"
	pkgAuth "github.com/arbrands/storefront-backend/pkg/auth"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db"
	"github.com/arbrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/arbrands/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

// Login failures share one message so callers cannot distinguish an unknown
// email from a wrong password.
const invalidCredentialsMessage = "invalid email or password"

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type accountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, dto accounts.CreateAccountDTO) (*models.Account, error)
}

type service struct {
	accounts    accountRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	AccountRepo    accountRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{
		accounts:    params.AccountRepo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, false)
}

// RegisterAdmin creates an elevated account. Routes expose it outside
// production only.
func (s *service) RegisterAdmin(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, true)
}

func (s *service) register(ctx context.Context, req RegisterRequest, isAdmin bool) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check account email")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account, err := s.accounts.Create(ctx, accounts.CreateAccountDTO{
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		// Two racing registrations can both pass the pre-check; the unique
		// index decides, and the loser surfaces the same Conflict.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	return s.respond(account)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	valid, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.respond(account)
}

func (s *service) respond(account *models.Account) (*AuthResponse, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), account.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &AuthResponse{
		Token:   token,
		Account: accounts.FromModel(account),
	}, nil
}
