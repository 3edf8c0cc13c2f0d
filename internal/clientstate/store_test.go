package clientstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbrands/storefront-backend/internal/accounts"
	"github.com/arbrands/storefront-backend/internal/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestGetPutRoundtrip(t *testing.T) {
	store := openTestStore(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, store.PutJSON("sample", doc{Name: "tee", Count: 3}))

	var got doc
	ok, err := store.GetJSON("sample", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc{Name: "tee", Count: 3}, got)
}

func TestGetJSON_AbsentKey(t *testing.T) {
	store := openTestStore(t)

	var out string
	ok, err := store.GetJSON("never-written", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetJSON_CorruptDocumentTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o644))

	var lines []cart.Line
	ok, err := store.GetJSON(KeyCart, &lines)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_AbsentKeyIsNoop(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Delete("never-written"))
}

func TestCartStore_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	cartStore := NewCartStore(store)

	loaded, err := cartStore.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	lines := []cart.Line{{
		Product: cart.ProductSnapshot{
			ID:    uuid.New(),
			Name:  "Classic Tee",
			Price: decimal.RequireFromString("25.00"),
		},
		Quantity: 2,
		Size:     "M",
	}}
	require.NoError(t, cartStore.Save(lines))

	loaded, err = cartStore.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, lines[0].Product.ID, loaded[0].Product.ID)
	assert.Equal(t, 2, loaded[0].Quantity)
	assert.True(t, lines[0].Product.Price.Equal(loaded[0].Product.Price))
}

func TestSession_SaveAndClear(t *testing.T) {
	store := openTestStore(t)
	session := NewSession(store)

	assert.Empty(t, session.Token())
	assert.Nil(t, session.Account())

	account := &accounts.AccountDTO{ID: uuid.New(), Email: "shopper@example.com"}
	require.NoError(t, session.Save("header.payload.signature", account))

	assert.Equal(t, "header.payload.signature", session.Token())
	got := session.Account()
	require.NotNil(t, got)
	assert.Equal(t, account.Email, got.Email)

	require.NoError(t, session.Clear())
	assert.Empty(t, session.Token())
	assert.Nil(t, session.Account())
}
