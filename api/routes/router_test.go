package routes

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arbrands/storefront-backend/internal/accounts"
	"github.com/arbrands/storefront-backend/internal/auth"
	"github.com/arbrands/storefront-backend/internal/categories"
	"github.com/arbrands/storefront-backend/internal/products"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db/models"
	"github.com/arbrands/storefront-backend/pkg/logger"
	"github.com/rs/zerolog"
)

func testConfig(env string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: env, Port: "0"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "arbrands", TTL: time.Hour},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:        time.Minute,
			LoginEmailLimit:    5,
			LoginIPLimit:       20,
			RegisterWindow:     5 * time.Minute,
			RegisterEmailLimit: 3,
			RegisterIPLimit:    20,
		},
	}
}

func newTestRouter(t *testing.T, env string) http.Handler {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&models.Account{}, &models.Category{}, &models.Product{}))

	cfg := testConfig(env)
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	accountRepo := accounts.NewRepository(conn)
	authSvc, err := auth.NewService(auth.ServiceParams{
		AccountRepo:    accountRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	require.NoError(t, err)
	categorySvc, err := categories.NewService(categories.NewRepository(conn))
	require.NoError(t, err)
	productSvc, err := products.NewService(products.NewRepository(conn))
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		AccountRepo: accountRepo,
		AuthSvc:     authSvc,
		CategorySvc: categorySvc,
		ProductSvc:  productSvc,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, body []byte) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

func registerToken(t *testing.T, router http.Handler, path, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, path, "", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(dataField(t, rec.Body.Bytes()), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestRouter_AdminCatalogFlow(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)
	adminToken := registerToken(t, router, "/api/v1/auth/register-admin", "admin@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/categories/", adminToken,
		`{"name":"T-Shirts","slug":"t-shirts"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(dataField(t, rec.Body.Bytes()), &category))

	rec = doJSON(t, router, http.MethodPost, "/api/v1/products/", adminToken,
		`{"name":"Classic Tee","price":"25.00","category_id":"`+category.ID+`","sizes":["S","M"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Catalog reads are public.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		Name         string  `json:"name"`
		CategoryName *string `json:"category_name"`
	}
	require.NoError(t, json.Unmarshal(dataField(t, rec.Body.Bytes()), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Classic Tee", list[0].Name)
	require.NotNil(t, list[0].CategoryName)
	assert.Equal(t, "T-Shirts", *list[0].CategoryName)
}

func TestRouter_MutationsRequireAdmin(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	// Anonymous write.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/categories/", "",
		`{"name":"T-Shirts","slug":"t-shirts"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated shopper without the admin flag.
	shopperToken := registerToken(t, router, "/api/v1/auth/register", "shopper@example.com")
	rec = doJSON(t, router, http.MethodPost, "/api/v1/categories/", shopperToken,
		`{"name":"T-Shirts","slug":"t-shirts"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ProfileRoundtrip(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)
	token := registerToken(t, router, "/api/v1/auth/register", "shopper@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(dataField(t, rec.Body.Bytes()), &profile))
	assert.Equal(t, "shopper@example.com", profile.Email)
	assert.False(t, profile.IsAdmin)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginFailureEnvelope(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"nobody@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "UNAUTHORIZED", payload.Error.Code)
	assert.Equal(t, "invalid email or password", payload.Error.Message)
}

func TestRouter_AdminRegistrationHiddenInProduction(t *testing.T) {
	router := newTestRouter(t, config.AppEnvProd)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register-admin", "",
		`{"email":"admin@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthLive(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
