package model

import "time"

// RefreshToken models an entry in the `refresh_tokens` table.  The ID is
// the token identifier embedded as the jti claim of the signed refresh
// token.  The plain token is never stored; only its SHA-256 hex digest,
// so a leaked table cannot be replayed against the refresh endpoint.
// Rows are deleted on rotation or logout and cascade-deleted with the
// owning user.
type RefreshToken struct {
	ID        string    // refresh_tokens.id (jti, UUID)
	UserID    uint64    // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash (SHA-256 hex)
	ExpiresAt time.Time // refresh_tokens.expires_at
	CreatedAt time.Time // refresh_tokens.created_at
}
