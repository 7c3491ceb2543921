package models

import "time"

// Account represents a registered user of the service. It carries the
// identity attributes used during authentication and the credential hash.
// The password hash must never cross a trust boundary: it is excluded from
// JSON serialization and is only read by the auth service.
type Account struct {
	// AccountID is the internal unique identifier of the account.
	AccountID int64 `json:"-"`

	// Username is the unique login name, 3-20 characters of
	// [A-Za-z0-9_]. Uniqueness is case-insensitive.
	Username string `json:"username"`

	// Email is the unique e-mail address. Uniqueness is case-insensitive.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized and never logged.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account may authenticate.
	IsActive bool `json:"-"`

	// IsAdmin marks elevated privileges. Informational only; no
	// authorization decisions in this service depend on it.
	IsAdmin bool `json:"-"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped whenever username, email or password changes.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
