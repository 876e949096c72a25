// Package utils provides helpers for token creation, verification and hashing.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer claim values.  Access and refresh tokens share the service
// issuer; password-reset tokens carry their own so they can never be
// presented on the refresh or access paths.
const (
	IssuerAuth  = "room-reservation"
	IssuerReset = "reset-password"
)

// ErrInvalidToken is returned by the parse helpers for any token that
// fails signature, expiry, issuer or claim-shape validation.  Callers
// deliberately receive no detail about which check failed.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed short-lived JWT plus its expiry.  It carries
// the user ID (sub) and role and is presented in the Authorization
// header on protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken is a signed long-lived JWT used to obtain new access
// tokens.  ID is the jti claim; the database stores only a SHA-256 hash
// of Raw, keyed by ID.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	ID  string    // jti claim, key of the stored hash record
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The token
// includes iss, sub, role, exp and iat claims.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"iss":  IssuerAuth,
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 refresh JWT.  Each token
// receives a freshly generated UUID as its jti claim; the caller must
// persist the (jti, hash, expiry) record before handing the raw token
// to the client.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (RefreshToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"iss": IssuerAuth,
		"sub": userID,
		"jti": jti,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: signed, ID: jti, Exp: exp}, nil
}

// ParseRefreshToken verifies the signature, expiry and issuer of a raw
// refresh token and returns the user ID and jti it carries.  Every
// failure collapses to ErrInvalidToken.
func ParseRefreshToken(secret, raw string) (uint64, string, error) {
	claims, err := parseHS256(secret, raw, IssuerAuth)
	if err != nil {
		return 0, "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", ErrInvalidToken
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return 0, "", ErrInvalidToken
	}
	return uint64(sub), jti, nil
}

// NewResetToken builds a short-lived password-reset JWT for the given
// username.  The reset issuer keeps it distinguishable from session
// tokens signed with the same secret.
func NewResetToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss": IssuerReset,
		"sub": username,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseResetToken verifies a password-reset token and returns the
// username it was issued for.  Signature, expiry and issuer failures
// all collapse to ErrInvalidToken.
func ParseResetToken(secret, raw string) (string, error) {
	claims, err := parseHS256(secret, raw, IssuerReset)
	if err != nil {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// parseHS256 validates an HS256 token signed with secret and checks the
// issuer claim.  Expiry is enforced by the jwt library itself.
func parseHS256(secret, raw, issuer string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a
// hex string.  Storing only the hash in the database prevents attackers
// from using stolen database entries to refresh sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
