package auth

import (
	"context"
	"testing"
	"time"

	"github.com/arbrands/storefront-backend/internal/accounts"
	pkgAuth "github.com/arbrands/storefront-backend/pkg/auth"
	"github.com/arbrands/storefront-backend/pkg/config"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arbrands/storefront-backend/pkg/db/models"
)

type stubAccountRepo struct {
	byEmail map[string]*models.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: map[string]*models.Account{}}
}

func (s *stubAccountRepo) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	if account, ok := s.byEmail[email]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccountRepo) Create(_ context.Context, dto accounts.CreateAccountDTO) (*models.Account, error) {
	if _, ok := s.byEmail[dto.Email]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	account := &models.Account{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		IsAdmin:      dto.IsAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[dto.Email] = account
	return account, nil
}

func newTestService(t *testing.T, repo *stubAccountRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		AccountRepo: repo,
		JWTConfig: config.JWTConfig{
			Secret: "test-secret",
			Issuer: "arbrands",
			TTL:    168 * time.Hour,
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Email: "shopper@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, registered.Account)
	assert.Equal(t, "shopper@example.com", registered.Account.Email)
	assert.False(t, registered.Account.IsAdmin)
	assert.NotEmpty(t, registered.Token)

	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "shopper@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, loggedIn.Account.ID)

	claims, err := pkgAuth.ParseAccessToken(config.JWTConfig{
		Secret: "test-secret",
		Issuer: "arbrands",
		TTL:    168 * time.Hour,
	}, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, claims.AccountID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "secret1"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegister_RaceLoserGetsConflict(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	// Simulate the second racer: the pre-check already passed, then the
	// insert hits the unique index.
	_, err := svc.Register(ctx, RegisterRequest{Email: "race@example.com", Password: "secret1"})
	require.NoError(t, err)
	delete(repo.byEmail, "race@example.com")
	repo.byEmail["race@example.com"] = &models.Account{ID: uuid.New(), Email: "race@example.com"}

	_, err = svc.Register(ctx, RegisterRequest{Email: "race@example.com", Password: "secret1"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "Case@Example.com", Password: "secret1"})
	require.NoError(t, err)

	// A differently-cased address is a different identity.
	_, err = svc.Register(ctx, RegisterRequest{Email: "case@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestRegisterAdmin_SetsFlag(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)

	result, err := svc.RegisterAdmin(context.Background(), RegisterRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, result.Account.IsAdmin)
}

func TestLogin_FailureShapeIsUniform(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "known@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.Error(t, unknownErr)
	_, wrongErr := svc.Login(ctx, LoginRequest{Email: "known@example.com", Password: "wrong-password"})
	require.Error(t, wrongErr)

	unknown := pkgerrors.As(unknownErr)
	wrong := pkgerrors.As(wrongErr)
	require.NotNil(t, unknown)
	require.NotNil(t, wrong)
	assert.Equal(t, pkgerrors.CodeUnauthorized, unknown.Code())
	assert.Equal(t, unknown.Code(), wrong.Code())
	assert.Equal(t, unknown.Message(), wrong.Message())
}
