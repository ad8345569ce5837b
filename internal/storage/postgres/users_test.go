package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	createdAt := time.Now()
	input := model.User{Login: "user", Email: "user@sushibar.local", PasswordHash: "hash", Role: model.RoleCustomer}
	mock.ExpectQuery("INSERT INTO users").WithArgs("user", "user@sushibar.local", "hash", model.RoleCustomer).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt),
	)
	user, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Login != "user" || user.Role != model.RoleCustomer {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), input); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), input); err == nil {
		t.Fatal("expected error")
	}

	cols := []string{"id", "login", "email", "password_hash", "role", "created_at"}
	mock.ExpectQuery("FROM users WHERE login=").WithArgs("user").WillReturnRows(
		pgxmockv3.NewRows(cols).AddRow(int64(1), "user", "user@sushibar.local", "hash", model.RoleStaff, createdAt))
	got, err := repo.GetByLogin(context.Background(), "user")
	if err != nil || got.Role != model.RoleStaff {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM users WHERE login=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByLogin(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE login=").WithArgs("err").WillReturnError(errors.New("fail"))
	if _, err := repo.GetByLogin(context.Background(), "err"); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(cols).AddRow(int64(1), "user", "user@sushibar.local", "hash", model.RoleCustomer, createdAt))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
