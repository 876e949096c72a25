package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ReservationRepo provides access to the `reservations` table.  All
// timestamp fields are stored in UTC; intervals are half-open
// [start_at, end_at), which the overlap predicate below relies on.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, user_id, room_id, start_at, end_at, status, created_at`

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.UserID, &res.RoomID, &res.StartAt, &res.EndAt, &res.Status, &res.CreatedAt)
}

// Create inserts a new reservation and populates the generated ID and
// creation timestamp on the provided record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, room_id, start_at, end_at, status)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.UserID, res.RoomID, res.StartAt.UTC(), res.EndAt.UTC(), res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// ExistsExact reports whether the user already holds a reservation with
// exactly this room and interval, regardless of its status.  It backs
// the duplicate check on create.
func (r *ReservationRepo) ExistsExact(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE user_id = ? AND room_id = ? AND start_at = ? AND end_at = ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, roomID, startAt.UTC(), endAt.UTC()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveOverlap reports whether any active reservation for the room
// intersects [startAt, endAt).  Cancelled reservations never block new
// bookings.  The predicate start_at < end AND end_at > start matches
// exactly the half-open overlap test; a reservation ending at the new
// start instant does not conflict.
func (r *ReservationRepo) HasActiveOverlap(ctx context.Context, roomID uint64, startAt, endAt time.Time) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE room_id = ? AND status = TRUE AND start_at < ? AND end_at > ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, roomID, endAt.UTC(), startAt.UTC()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByIDForUser returns a reservation only when it is owned by the
// given user.  Missing and foreign reservations are indistinguishable:
// both return ErrReservationNotFound.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? AND user_id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id, userID), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByUser returns all reservations owned by the user ordered by
// creation time descending (most recent first).  No reservations is not
// an error; the result is simply empty.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
	           WHERE user_id = ?
	           ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

// ListAll returns every reservation across all users, newest first.
// Reserved for admin use.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]*model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res := new(model.Reservation)
		if err := scanReservation(rows, res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus performs a partial update of the status column only.  Used
// by cancellation; start_at, end_at and room_id are never touched.
func (r *ReservationRepo) SetStatus(ctx context.Context, id uint64, status bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Delete removes a reservation permanently, from either status.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
