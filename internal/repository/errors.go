// Package repository implements raw-SQL data access for the domain
// entities.  Each repository defines sentinel errors for the failure
// scenarios higher layers need to distinguish; anything else is the
// store's own error wrapped unchanged so it is never silently swallowed.
package repository

import "errors"

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when an insert violates the unique
// constraint on users.username.
var ErrUsernameTaken = errors.New("username already exists")

// ErrRoomNotFound is returned when a room lookup or mutation matches no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation lookup or
// mutation matches no row for the given filter.  Ownership filters use
// the same sentinel so callers cannot distinguish a foreign reservation
// from a missing one.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTokenNotFound is returned when a refresh-token lookup or rotation
// matches no stored row, including the row having already been consumed
// by a concurrent rotation.
var ErrTokenNotFound = errors.New("refresh token not found")
