package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

func TestContactRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &contactRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO contacts").WithArgs("Anna", "anna@example.com", "Hello", model.ContactStatusNew).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
	c, err := repo.Create(context.Background(), model.Contact{Name: "Anna", Email: "anna@example.com", Message: "Hello", Status: model.ContactStatusNew})
	if err != nil || c.ID != 1 || !c.CreatedAt.Equal(now) {
		t.Fatalf("unexpected contact: %+v err=%v", c, err)
	}

	cols := []string{"id", "name", "email", "message", "status", "created_at"}
	mock.ExpectQuery("FROM contacts WHERE id=").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows(cols).AddRow(int64(1), "Anna", "anna@example.com", "Hello", model.ContactStatusNew, now))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM contacts WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM contacts").WithArgs("new").
		WillReturnRows(pgxmockv3.NewRows(cols).AddRow(int64(1), "Anna", "anna@example.com", "Hello", model.ContactStatusNew, now))
	list, err := repo.List(context.Background(), "new")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %+v err=%v", list, err)
	}

	mock.ExpectExec("UPDATE contacts SET status=").WithArgs(model.ContactStatusAnswered, int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateStatus(context.Background(), 1, model.ContactStatusAnswered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE contacts SET status=").WithArgs(model.ContactStatusRejected, int64(5)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateStatus(context.Background(), 5, model.ContactStatusRejected); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestContactRepositoryListRowsError(t *testing.T) {
	repo := &contactRepository{storage: newRowsErrorStorage()}
	if _, err := repo.List(context.Background(), ""); err == nil {
		t.Fatal("expected rows error")
	}
}
