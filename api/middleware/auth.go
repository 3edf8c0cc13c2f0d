package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/arbrands/storefront-backend/api/responses"
	"github.com/arbrands/storefront-backend/internal/accounts"
	pkgauth "github.com/arbrands/storefront-backend/pkg/auth"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/arbrands/storefront-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// Auth validates a bearer token, re-resolves the subject against the live
// account store and seeds the request context with the result. A token whose
// account no longer exists is rejected the same way as an invalid one.
func Auth(cfg config.JWTConfig, resolver accountResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, pkgauth.ErrTokenExpired) {
					msg = "token expired"
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			record, err := resolver.FindByID(r.Context(), claims.AccountID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve account"))
				return
			}
			account := accounts.FromModel(record)

			ctx := WithAccount(r.Context(), account)
			if logg != nil {
				ctx = logg.WithUserID(ctx, account.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
