package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

// Name and description of the group every new account is added to.
// Kept from the original site structure; membership is cosmetic.
const (
	defaultGroupName        = "site_users"
	defaultGroupDescription = "Normal website users"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup and identifier
// updates against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account and returns the fully populated
// [models.Account] with server-assigned fields (AccountID, CreatedAt).
//
// Default-group membership is written in the same transaction as the
// account row, so account creation's full effect set is visible here and
// nowhere else.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDuplicateIdentifier].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to begin transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createAccount, account.Username, account.Email, account.PasswordHash)

	var created models.Account
	if err = row.Scan(
		&created.AccountID,
		&created.Username,
		&created.Email,
		&created.PasswordHash,
		&created.IsActive,
		&created.IsAdmin,
		&created.CreatedAt,
		&created.UpdatedAt,
	); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("username", account.Username).Msg("error: account insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrDuplicateIdentifier
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var groupID int64
	if err = tx.QueryRowContext(ctx, ensureDefaultGroup, defaultGroupName, defaultGroupDescription).Scan(&groupID); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: ensuring default group failed")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err = tx.ExecContext(ctx, addGroupMembership, created.AccountID, groupID); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Int64("account_id", created.AccountID).Msg("error: adding default group membership failed")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to commit transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// FindByID retrieves an account by its primary key.
func (r *accountRepository) FindByID(ctx context.Context, accountID int64) (models.Account, error) {
	return r.findOne(ctx, findAccountByID, accountID)
}

// FindByUsername retrieves the account whose username matches the given
// value, ignoring case.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.findOne(ctx, findAccountByUsername, username)
}

// FindByEmail retrieves the account whose email matches the given value,
// ignoring case.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findOne(ctx, findAccountByEmail, email)
}

func (r *accountRepository) findOne(ctx context.Context, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(
		&found.AccountID,
		&found.Username,
		&found.Email,
		&found.PasswordHash,
		&found.IsActive,
		&found.IsAdmin,
		&found.CreatedAt,
		&found.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}

		log.Err(err).Str("func", "*accountRepository.findOne").Msg("error: scanning account row")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateUsername changes the account's username. The case-insensitive
// unique index arbitrates concurrent changes racing on the same value:
// exactly one transaction wins, the rest get [ErrDuplicateIdentifier].
func (r *accountRepository) UpdateUsername(ctx context.Context, accountID int64, username string) (models.Account, error) {
	return r.updateIdentifier(ctx, accountID, "username", username)
}

// UpdateEmail changes the account's email under the same uniqueness
// arbitration as [UpdateUsername].
func (r *accountRepository) UpdateEmail(ctx context.Context, accountID int64, email string) (models.Account, error) {
	return r.updateIdentifier(ctx, accountID, "email", email)
}

func (r *accountRepository) updateIdentifier(ctx context.Context, accountID int64, column, value string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("accounts").
		Set(column, value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"account_id": accountID}).
		Suffix("RETURNING account_id, username, email, password_hash, is_active, is_admin, created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.updateIdentifier").Str("column", column).Msg("failed to build update query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Account
	row := r.db.QueryRowContext(ctx, query, args...)

	if err = row.Scan(
		&updated.AccountID,
		&updated.Username,
		&updated.Email,
		&updated.PasswordHash,
		&updated.IsActive,
		&updated.IsAdmin,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Account{}, ErrAccountNotFound
		case postgresError(err) == pgerrcode.UniqueViolation:
			log.Warn().Str("func", "*accountRepository.updateIdentifier").
				Int64("account_id", accountID).
				Str("column", column).
				Msg("identifier already taken")
			return models.Account{}, ErrDuplicateIdentifier
		default:
			log.Err(err).Str("func", "*accountRepository.updateIdentifier").Str("column", column).Msg("error: executing identifier update")
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *accountRepository) UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateAccountPasswordHash, accountID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Int64("account_id", accountID).Msg("error: executing password hash update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
