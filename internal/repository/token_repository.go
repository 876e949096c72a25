package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
)

// TokenRepo persists refresh tokens.  Rows are keyed by the jti claim of
// the signed token and hold only a SHA-256 hash of the raw token string.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store inserts a refresh token record.  A session must not be handed to
// the client unless this write succeeds, otherwise it could never be
// revoked.
func (r *TokenRepo) Store(ctx context.Context, t *model.RefreshToken) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES (?,?,?,?)",
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC())
	return err
}

// Get fetches the record for a (user, jti) pair.  Expired rows are
// treated as absent.
func (r *TokenRepo) Get(ctx context.Context, userID uint64, id string) (model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM refresh_tokens
		 WHERE id=? AND user_id=? AND expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		id, userID).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshToken{}, ErrTokenNotFound
	}
	return t, err
}

// Rotate consumes the old token row and stores its replacement in a
// single transaction.  Deleting zero rows aborts the transaction with
// ErrTokenNotFound, so of two concurrent refresh calls presenting the
// same token exactly one succeeds.
func (r *TokenRepo) Rotate(ctx context.Context, userID uint64, oldID string, newTok *model.RefreshToken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE id=? AND user_id=?", oldID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTokenNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES (?,?,?,?)",
		newTok.ID, newTok.UserID, newTok.TokenHash, newTok.ExpiresAt.UTC()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a single token row, ending one session.
func (r *TokenRepo) Delete(ctx context.Context, userID uint64, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// DeleteAllForUser removes every token of a user (logout everywhere).
func (r *TokenRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID)
	return err
}
