package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateIdentifier is returned when an INSERT or UPDATE violates
	// the case-insensitive uniqueness of a username or email.
	ErrDuplicateIdentifier = errors.New("identifier already taken")

	// ErrAccountNotFound is returned when a lookup expected to match one
	// account produces an empty result set.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSessionNotFound is returned when no session row matches the
	// presented token hash.
	ErrSessionNotFound = errors.New("session not found")

	// ErrResetTokenNotFound is returned when no usable password-reset
	// token matches the presented token hash.
	ErrResetTokenNotFound = errors.New("password reset token not found")

	// ErrItemNotFound is returned when a shelf mutation targets an item id
	// that does not exist at all. Internal only: the service layer merges
	// it with ErrItemNotOwned before anything leaves the core.
	ErrItemNotFound = errors.New("saved item not found")

	// ErrItemNotOwned is returned when a shelf mutation targets an item
	// that exists but belongs to a different account.
	ErrItemNotOwned = errors.New("saved item owned by different account")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
