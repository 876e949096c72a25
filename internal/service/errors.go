// Package service implements the domain operations behind the HTTP
// layer: reservation booking and lifecycle, room inventory, identity and
// sessions, and account management.  Every operation takes the caller's
// identity as an explicit argument and returns plain data or one of the
// sentinel errors below; no framework types appear in the signatures.
//
// The sentinels model expected business outcomes.  They are terminal:
// none of them is transient, so callers must handle them rather than
// retry.  Store failures that do not map to a sentinel are wrapped and
// propagated unchanged.
package service

import "errors"

// ErrNotFound is returned when an entity is absent or not owned by the
// caller.  Existence and ownership are deliberately indistinguishable so
// that ids belonging to other users cannot be probed.
var ErrNotFound = errors.New("not found")

// ErrInvalidInterval is returned when a reservation request does not
// satisfy startAt < endAt.
var ErrInvalidInterval = errors.New("invalid reservation interval")

// ErrDuplicateReservation is returned when the user already holds a
// reservation for exactly the same room and interval.
var ErrDuplicateReservation = errors.New("reservation already exists")

// ErrSlotConflict is returned when an active reservation overlaps the
// requested interval for the same room.
var ErrSlotConflict = errors.New("reservation with conflicting time")

// ErrCancellationWindow is returned when a cancellation is attempted
// less than 24 hours before the reservation starts.
var ErrCancellationWindow = errors.New("reservations can only be cancelled at least 24 hours in advance")

// ErrDuplicateUser is returned when registering with a taken username.
var ErrDuplicateUser = errors.New("user already exists")

// ErrInvalidCredentials is returned on login failure.  It never reveals
// whether the username existed or the password mismatched.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRefreshToken is returned for every refresh or logout failure
// involving a presented refresh token: malformed, expired, forged,
// already consumed, or belonging to a deleted account.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrInvalidResetToken is returned for every password-reset verification
// failure, with no structured detail.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
