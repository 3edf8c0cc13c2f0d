package middleware

import (
	"context"

	"github.com/arbrands/storefront-backend/internal/accounts"
)

type contextKey string

const ctxAccount contextKey = "account"

// WithAccount injects the verified account into the context.
func WithAccount(ctx context.Context, account *accounts.AccountDTO) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccount, account)
}

// AccountFromContext returns the verified account, or nil outside the guard.
func AccountFromContext(ctx context.Context) *accounts.AccountDTO {
	if ctx == nil {
		return nil
	}
	if account, ok := ctx.Value(ctxAccount).(*accounts.AccountDTO); ok {
		return account
	}
	return nil
}
