package service

import (
	"context"

	"github.com/quickflicks/quickflicks/models"
)

// Auth covers account lifecycle: registration, login and credential changes.
type Auth interface {
	// Register creates an account after validating username, e-mail and
	// password format. The password is stored as a bcrypt hash.
	Register(ctx context.Context, username, email, password string) (models.Account, error)

	// Authenticate resolves the identifier first as a username, then as an
	// e-mail address, and verifies the password. Every failure mode returns
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, identifier, password string) (models.Account, error)

	// Account returns the account behind the id.
	Account(ctx context.Context, accountID int64) (models.Account, error)

	// ChangeUsername and ChangeEmail update the identifier and revoke every
	// other live session of the account; the session identified by
	// keepTokenHash survives.
	ChangeUsername(ctx context.Context, accountID int64, username, keepTokenHash string) (models.Account, error)
	ChangeEmail(ctx context.Context, accountID int64, email, keepTokenHash string) (models.Account, error)

	// ChangePassword verifies the current password before installing the new
	// one, then revokes every other live session.
	ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword, keepTokenHash string) error

	// RequestPasswordReset issues a one-time reset token and hands it to the
	// notifier. An unknown e-mail succeeds silently.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset consumes the token, installs the new password and
	// revokes every live session of the account.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// Sessions issues and validates opaque session tokens. Only token digests
// ever reach storage.
type Sessions interface {
	// Issue creates a session and returns the raw token for the client.
	Issue(ctx context.Context, accountID int64) (string, error)

	// Validate resolves a raw token to the owning account. It returns the
	// token's digest so the caller can later name this session (e.g. to keep
	// it alive while revoking the rest).
	Validate(ctx context.Context, token string) (accountID int64, tokenHash string, err error)

	// Revoke terminates the session behind the raw token. Revocation is
	// terminal and immediately visible to subsequent validations.
	Revoke(ctx context.Context, token string) error

	// RevokeAll terminates every live session of the account.
	RevokeAll(ctx context.Context, accountID int64) error
}

// Shelf covers the per-account movie collection.
type Shelf interface {
	// AddItem saves a catalog entry to the shelf. Adding the same entry
	// twice returns the existing item unchanged.
	AddItem(ctx context.Context, ownerID int64, req models.AddItemRequest) (models.SavedItem, error)

	SetStatus(ctx context.Context, ownerID, itemID int64, status models.Status) error
	SetRating(ctx context.Context, ownerID, itemID int64, rating models.Rating) error
	RemoveItem(ctx context.Context, ownerID, itemID int64) error

	// List returns the caller's collection grouped by status,
	// newest-created first within each group.
	List(ctx context.Context, ownerID int64) (models.Shelf, error)
}

// Catalog searches the external movie catalog. Implementations live outside
// this package; the service layer only depends on the behavior.
type Catalog interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Notifier delivers password-reset tokens to account owners.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
