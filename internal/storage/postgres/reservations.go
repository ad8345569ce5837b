package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

type reservationRepository struct {
	storage *Storage
}

const reservationColumns = `id, name, email, mobile, guests, reserved_for, note, status, created_at`

func (r *reservationRepository) Create(ctx context.Context, reservation model.Reservation) (*model.Reservation, error) {
	const query = `INSERT INTO reservations (name, email, mobile, guests, reserved_for, note, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	res := reservation
	err := r.storage.pool.QueryRow(ctx, query, res.Name, res.Email, res.Mobile, res.Guests, res.ReservedFor, res.Note, res.Status).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := scanReservation(r.storage.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// List returns reservations ordered by booking time; empty status means all.
func (r *reservationRepository) List(ctx context.Context, status string) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE $1 = '' OR status = $1 ORDER BY reserved_for`
	rows, err := r.storage.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE reservations SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.Name, &res.Email, &res.Mobile, &res.Guests, &res.ReservedFor, &res.Note, &res.Status, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
