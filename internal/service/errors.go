package service

import "errors"

// Errors returned by the service layer. Handlers map these onto HTTP
// status codes; anything not listed here is treated as an internal error.
var (
	// ErrInvalidFormat means a field failed syntactic validation
	// (username charset/length, e-mail shape, password length, empty fields).
	ErrInvalidFormat = errors.New("invalid field format")

	// ErrDuplicateIdentifier means the requested username or e-mail is
	// already taken by another account (case-insensitive).
	ErrDuplicateIdentifier = errors.New("username or email already taken")

	// ErrInvalidCredentials covers every authentication failure: unknown
	// identifier, wrong password and inactive account are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionInvalid covers expired, revoked and unknown session tokens.
	ErrSessionInvalid = errors.New("session is expired, revoked or unknown")

	// ErrResetTokenInvalid covers expired, consumed and unknown
	// password-reset tokens.
	ErrResetTokenInvalid = errors.New("password reset token is invalid")

	// ErrInvalidStatus means the submitted shelf status is not one of the
	// enumerated states.
	ErrInvalidStatus = errors.New("unknown shelf status")

	// ErrInvalidRating means the submitted rating is not one of the
	// enumerated values.
	ErrInvalidRating = errors.New("unknown rating")

	// ErrItemNotFound is returned when a saved item does not exist OR
	// belongs to another account. The two cases are merged so a caller
	// cannot probe for the existence of other users' items.
	ErrItemNotFound = errors.New("saved item not found")
)
