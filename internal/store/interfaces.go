package store

import (
	"context"
	"time"

	"github.com/quickflicks/quickflicks/models"
)

// AccountRepository persists account records. Identifier uniqueness is
// enforced by the database, so concurrent creates or identifier changes
// racing on the same value resolve to exactly one winner.
type AccountRepository interface {
	// CreateAccount inserts the account and ensures default-group
	// membership inside one transaction.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	FindByID(ctx context.Context, accountID int64) (models.Account, error)

	// FindByUsername and FindByEmail match case-insensitively.
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)

	UpdateUsername(ctx context.Context, accountID int64, username string) (models.Account, error)
	UpdateEmail(ctx context.Context, accountID int64, email string) (models.Account, error)
	UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error
}

// SessionRepository persists issued sessions. Only token hashes are stored;
// a revocation write is immediately visible to subsequent lookups.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, accountID int64) error
	// RevokeOthers revokes every live session of the account except the one
	// identified by keepTokenHash. Used when credentials change.
	RevokeOthers(ctx context.Context, accountID int64, keepTokenHash string) error
}

// ResetTokenRepository persists one-time password-reset tokens.
type ResetTokenRepository interface {
	CreateResetToken(ctx context.Context, accountID int64, tokenID, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken atomically marks an unexpired, unconsumed token as
	// used and returns the account it belongs to.
	ConsumeResetToken(ctx context.Context, tokenHash string) (int64, error)
}

// ShelfRepository persists saved items. Every mutation is a single guarded
// statement, so concurrent changes to the same item serialize at the row and
// cannot produce a torn status/rating pair.
type ShelfRepository interface {
	// UpsertItem performs the idempotent add: a second save of the same
	// (owner, external id) pair returns the existing row.
	UpsertItem(ctx context.Context, item models.SavedItem) (models.SavedItem, error)

	// SetStatus, SetRating and DeleteItem distinguish ErrItemNotFound from
	// ErrItemNotOwned so the store can log the difference; callers merge them.
	SetStatus(ctx context.Context, itemID, callerID int64, status models.Status) error
	SetRating(ctx context.Context, itemID, callerID int64, rating models.Rating) error
	DeleteItem(ctx context.Context, itemID, callerID int64) error

	// ListByOwner returns all items of one account, newest-created first.
	ListByOwner(ctx context.Context, ownerID int64) ([]models.SavedItem, error)
}
