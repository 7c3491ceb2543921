package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/service"
	"github.com/quickflicks/quickflicks/models"
)

// Function-field mocks for the service interfaces. Each test overrides only
// the methods it exercises; calling an unset method panics, which makes an
// unexpected service call a loud failure.

type mockAuth struct {
	registerFn             func(ctx context.Context, username, email, password string) (models.Account, error)
	authenticateFn         func(ctx context.Context, identifier, password string) (models.Account, error)
	accountFn              func(ctx context.Context, accountID int64) (models.Account, error)
	changeUsernameFn       func(ctx context.Context, accountID int64, username, keepTokenHash string) (models.Account, error)
	changeEmailFn          func(ctx context.Context, accountID int64, email, keepTokenHash string) (models.Account, error)
	changePasswordFn       func(ctx context.Context, accountID int64, currentPassword, newPassword, keepTokenHash string) error
	requestPasswordResetFn func(ctx context.Context, email string) error
	confirmPasswordResetFn func(ctx context.Context, token, newPassword string) error
}

func (m *mockAuth) Register(ctx context.Context, username, email, password string) (models.Account, error) {
	return m.registerFn(ctx, username, email, password)
}

func (m *mockAuth) Authenticate(ctx context.Context, identifier, password string) (models.Account, error) {
	return m.authenticateFn(ctx, identifier, password)
}

func (m *mockAuth) Account(ctx context.Context, accountID int64) (models.Account, error) {
	return m.accountFn(ctx, accountID)
}

func (m *mockAuth) ChangeUsername(ctx context.Context, accountID int64, username, keepTokenHash string) (models.Account, error) {
	return m.changeUsernameFn(ctx, accountID, username, keepTokenHash)
}

func (m *mockAuth) ChangeEmail(ctx context.Context, accountID int64, email, keepTokenHash string) (models.Account, error) {
	return m.changeEmailFn(ctx, accountID, email, keepTokenHash)
}

func (m *mockAuth) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword, keepTokenHash string) error {
	return m.changePasswordFn(ctx, accountID, currentPassword, newPassword, keepTokenHash)
}

func (m *mockAuth) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestPasswordResetFn(ctx, email)
}

func (m *mockAuth) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.confirmPasswordResetFn(ctx, token, newPassword)
}

type mockSessions struct {
	issueFn     func(ctx context.Context, accountID int64) (string, error)
	validateFn  func(ctx context.Context, token string) (int64, string, error)
	revokeFn    func(ctx context.Context, token string) error
	revokeAllFn func(ctx context.Context, accountID int64) error
}

func (m *mockSessions) Issue(ctx context.Context, accountID int64) (string, error) {
	return m.issueFn(ctx, accountID)
}

func (m *mockSessions) Validate(ctx context.Context, token string) (int64, string, error) {
	return m.validateFn(ctx, token)
}

func (m *mockSessions) Revoke(ctx context.Context, token string) error {
	return m.revokeFn(ctx, token)
}

func (m *mockSessions) RevokeAll(ctx context.Context, accountID int64) error {
	return m.revokeAllFn(ctx, accountID)
}

type mockShelf struct {
	addItemFn    func(ctx context.Context, ownerID int64, req models.AddItemRequest) (models.SavedItem, error)
	setStatusFn  func(ctx context.Context, ownerID, itemID int64, status models.Status) error
	setRatingFn  func(ctx context.Context, ownerID, itemID int64, rating models.Rating) error
	removeItemFn func(ctx context.Context, ownerID, itemID int64) error
	listFn       func(ctx context.Context, ownerID int64) (models.Shelf, error)
}

func (m *mockShelf) AddItem(ctx context.Context, ownerID int64, req models.AddItemRequest) (models.SavedItem, error) {
	return m.addItemFn(ctx, ownerID, req)
}

func (m *mockShelf) SetStatus(ctx context.Context, ownerID, itemID int64, status models.Status) error {
	return m.setStatusFn(ctx, ownerID, itemID, status)
}

func (m *mockShelf) SetRating(ctx context.Context, ownerID, itemID int64, rating models.Rating) error {
	return m.setRatingFn(ctx, ownerID, itemID, rating)
}

func (m *mockShelf) RemoveItem(ctx context.Context, ownerID, itemID int64) error {
	return m.removeItemFn(ctx, ownerID, itemID)
}

func (m *mockShelf) List(ctx context.Context, ownerID int64) (models.Shelf, error) {
	return m.listFn(ctx, ownerID)
}

type mockCatalog struct {
	searchFn func(ctx context.Context, query string) ([]models.SearchResult, error)
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return m.searchFn(ctx, query)
}

// okSessions is a Sessions mock that accepts the token "valid-token" as
// account 1. Authenticated endpoint tests route through it.
func okSessions() *mockSessions {
	return &mockSessions{
		validateFn: func(_ context.Context, token string) (int64, string, error) {
			if token != "valid-token" {
				return 0, "", service.ErrSessionInvalid
			}
			return 1, "hash-of-valid-token", nil
		},
	}
}

func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
