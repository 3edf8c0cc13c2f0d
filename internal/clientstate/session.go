package clientstate

import "github.com/arbrands/storefront-backend/internal/accounts"

// Session is the client's remembered identity: the last-issued token plus the
// account snapshot used for optimistic display before the next verification.
type Session struct {
	store *Store
}

// NewSession wraps a store for session persistence.
func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Token returns the saved token, or empty when none is stored.
func (s *Session) Token() string {
	var token string
	if ok, err := s.store.GetJSON(KeyToken, &token); err != nil || !ok {
		return ""
	}
	return token
}

// Account returns the saved account snapshot, or nil when none is stored.
func (s *Session) Account() *accounts.AccountDTO {
	var account accounts.AccountDTO
	if ok, err := s.store.GetJSON(KeyUser, &account); err != nil || !ok {
		return nil
	}
	return &account
}

// Save persists both halves of the session.
func (s *Session) Save(token string, account *accounts.AccountDTO) error {
	if err := s.store.PutJSON(KeyToken, token); err != nil {
		return err
	}
	return s.store.PutJSON(KeyUser, account)
}

// Clear discards the session, the client-side logout.
func (s *Session) Clear() error {
	if err := s.store.Delete(KeyToken); err != nil {
		return err
	}
	return s.store.Delete(KeyUser)
}
