package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

type contactRepository struct {
	storage *Storage
}

func (r *contactRepository) Create(ctx context.Context, contact model.Contact) (*model.Contact, error) {
	const query = `INSERT INTO contacts (name, email, message, status) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	c := contact
	if err := r.storage.pool.QueryRow(ctx, query, c.Name, c.Email, c.Message, c.Status).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	const query = `SELECT id, name, email, message, status, created_at FROM contacts WHERE id=$1`
	var c model.Contact
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns contacts newest first; empty status means all.
func (r *contactRepository) List(ctx context.Context, status string) ([]model.Contact, error) {
	const query = `SELECT id, name, email, message, status, created_at FROM contacts
                   WHERE $1 = '' OR status = $1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE contacts SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
