package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

var accountColumns = []string{
	"account_id", "username", "email", "password_hash",
	"is_active", "is_admin", "created_at", "updated_at",
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &accountRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func accountRow(id int64, username, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(accountColumns).
		AddRow(id, username, email, "hash", true, false, now, now)
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()
	account := models.Account{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(account.Username, account.Email, account.PasswordHash).
		WillReturnRows(accountRow(1, account.Username, account.Email))
	mock.ExpectQuery("INSERT INTO groups").
		WithArgs(defaultGroupName, defaultGroupDescription).
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO group_memberships").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateAccount(ctx, account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AccountID != 1 {
		t.Errorf("expected AccountID=1, got %d", created.AccountID)
	}
	if !created.IsActive {
		t.Error("expected new account to be active")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateAccount_DuplicateIdentifier(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CreateAccount(ctx, models.Account{Username: "alice", Email: "alice@x.com"})
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}
}

func TestCreateAccount_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	_, err := repo.CreateAccount(ctx, models.Account{Username: "alice"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindByUsername_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT account_id").
		WithArgs("ALICE").
		WillReturnRows(accountRow(1, "alice", "alice@x.com"))

	found, err := repo.FindByUsername(context.Background(), "ALICE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("expected username alice, got %s", found.Username)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT account_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT account_id").
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateUsername_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs("newname", int64(1)).
		WillReturnRows(accountRow(1, "newname", "alice@x.com"))

	updated, err := repo.UpdateUsername(context.Background(), 1, "newname")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Username != "newname" {
		t.Errorf("expected username newname, got %s", updated.Username)
	}
}

func TestUpdateEmail_Duplicate(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs("taken@x.com", int64(1)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateEmail(context.Background(), 1, "taken@x.com")
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}
}

func TestUpdateUsername_AccountMissing(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs("newname", int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUsername(context.Background(), 99, "newname")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdatePasswordHash_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(1), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePasswordHash(context.Background(), 1, "newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePasswordHash_AccountMissing(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(99), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(context.Background(), 99, "newhash")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
