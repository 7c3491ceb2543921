// Package utils provides small helpers shared across layers: type-safe
// context keys for request-scoped identity and a JSON response writer.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key under which the auth middleware stores the
// authenticated account's id.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, int64(42))
var AccountIDCtxKey = contextKey("accountID")

// TokenHashCtxKey is the key under which the auth middleware stores the
// digest of the session token that authenticated the request. Credential
// changes use it to keep the current session alive while revoking the rest.
var TokenHashCtxKey = contextKey("tokenHash")

// GetAccountIDFromContext retrieves the authenticated account id from the
// context.
//
// Returns the id and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// GetTokenHashFromContext retrieves the current session's token digest from
// the context.
func GetTokenHashFromContext(ctx context.Context) (string, bool) {
	tokenHash, ok := ctx.Value(TokenHashCtxKey).(string)
	return tokenHash, ok
}
