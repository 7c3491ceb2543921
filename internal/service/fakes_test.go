package service

import (
	"context"
	"strings"
	"time"

	"github.com/quickflicks/quickflicks/internal/store"
	"github.com/quickflicks/quickflicks/models"
)

// In-memory repository fakes. They enforce the same uniqueness and ownership
// rules as the SQL implementations so service tests exercise real branches.

type fakeAccountRepo struct {
	accounts map[int64]models.Account
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]models.Account), nextID: 1}
}

func (f *fakeAccountRepo) taken(username, email string, exceptID int64) bool {
	for id, a := range f.accounts {
		if id == exceptID {
			continue
		}
		if username != "" && strings.EqualFold(a.Username, username) {
			return true
		}
		if email != "" && strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	if f.taken(account.Username, account.Email, 0) {
		return models.Account{}, store.ErrDuplicateIdentifier
	}

	account.AccountID = f.nextID
	account.IsActive = true
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.AccountID] = account
	f.nextID++
	return account, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, accountID int64) (models.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (models.Account, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Username, username) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (models.Account, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccountRepo) UpdateUsername(_ context.Context, accountID int64, username string) (models.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	if f.taken(username, "", accountID) {
		return models.Account{}, store.ErrDuplicateIdentifier
	}

	account.Username = username
	account.UpdatedAt = time.Now()
	f.accounts[accountID] = account
	return account, nil
}

func (f *fakeAccountRepo) UpdateEmail(_ context.Context, accountID int64, email string) (models.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	if f.taken("", email, accountID) {
		return models.Account{}, store.ErrDuplicateIdentifier
	}

	account.Email = email
	account.UpdatedAt = time.Now()
	f.accounts[accountID] = account
	return account, nil
}

func (f *fakeAccountRepo) UpdatePasswordHash(_ context.Context, accountID int64, passwordHash string) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return store.ErrAccountNotFound
	}

	account.PasswordHash = passwordHash
	f.accounts[accountID] = account
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]models.Session // keyed by token hash

	revokeOthersCalls int
	revokeAllCalls    int

	// when set, the matching revocation call fails without touching state
	revokeOthersErr error
	revokeAllErr    error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session models.Session) (models.Session, error) {
	session.IssuedAt = time.Now()
	f.sessions[session.TokenHash] = session
	return session, nil
}

func (f *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (models.Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if session, ok := f.sessions[tokenHash]; ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
		f.sessions[tokenHash] = session
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, accountID int64) error {
	f.revokeAllCalls++
	if f.revokeAllErr != nil {
		return f.revokeAllErr
	}

	now := time.Now()
	for hash, session := range f.sessions {
		if session.AccountID == accountID && session.RevokedAt == nil {
			session.RevokedAt = &now
			f.sessions[hash] = session
		}
	}
	return nil
}

func (f *fakeSessionRepo) RevokeOthers(_ context.Context, accountID int64, keepTokenHash string) error {
	f.revokeOthersCalls++
	if f.revokeOthersErr != nil {
		return f.revokeOthersErr
	}

	now := time.Now()
	for hash, session := range f.sessions {
		if session.AccountID == accountID && hash != keepTokenHash && session.RevokedAt == nil {
			session.RevokedAt = &now
			f.sessions[hash] = session
		}
	}
	return nil
}

type fakeResetToken struct {
	accountID int64
	expiresAt time.Time
	consumed  bool
}

type fakeResetTokenRepo struct {
	tokens map[string]*fakeResetToken // keyed by token hash
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*fakeResetToken)}
}

func (f *fakeResetTokenRepo) CreateResetToken(_ context.Context, accountID int64, _, tokenHash string, expiresAt time.Time) error {
	f.tokens[tokenHash] = &fakeResetToken{accountID: accountID, expiresAt: expiresAt}
	return nil
}

func (f *fakeResetTokenRepo) ConsumeResetToken(_ context.Context, tokenHash string) (int64, error) {
	token, ok := f.tokens[tokenHash]
	if !ok || token.consumed || time.Now().After(token.expiresAt) {
		return 0, store.ErrResetTokenNotFound
	}

	token.consumed = true
	return token.accountID, nil
}

type fakeShelfRepo struct {
	items  map[int64]models.SavedItem
	nextID int64
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{items: make(map[int64]models.SavedItem), nextID: 1}
}

func (f *fakeShelfRepo) UpsertItem(_ context.Context, item models.SavedItem) (models.SavedItem, error) {
	for _, existing := range f.items {
		if existing.AccountID == item.AccountID && existing.ExternalID == item.ExternalID {
			return existing, nil
		}
	}

	item.ItemID = f.nextID
	item.Status = models.StatusNewCandidate
	item.Rating = models.RatingUnrated
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ItemID] = item
	f.nextID++
	return item, nil
}

func (f *fakeShelfRepo) guard(itemID, callerID int64) (models.SavedItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return models.SavedItem{}, store.ErrItemNotFound
	}
	if item.AccountID != callerID {
		return models.SavedItem{}, store.ErrItemNotOwned
	}
	return item, nil
}

func (f *fakeShelfRepo) SetStatus(_ context.Context, itemID, callerID int64, status models.Status) error {
	item, err := f.guard(itemID, callerID)
	if err != nil {
		return err
	}

	item.Status = status
	item.UpdatedAt = time.Now()
	f.items[itemID] = item
	return nil
}

func (f *fakeShelfRepo) SetRating(_ context.Context, itemID, callerID int64, rating models.Rating) error {
	item, err := f.guard(itemID, callerID)
	if err != nil {
		return err
	}

	item.Rating = rating
	item.UpdatedAt = time.Now()
	f.items[itemID] = item
	return nil
}

func (f *fakeShelfRepo) DeleteItem(_ context.Context, itemID, callerID int64) error {
	if _, err := f.guard(itemID, callerID); err != nil {
		return err
	}

	delete(f.items, itemID)
	return nil
}

func (f *fakeShelfRepo) ListByOwner(_ context.Context, ownerID int64) ([]models.SavedItem, error) {
	items := make([]models.SavedItem, 0, len(f.items))
	for _, item := range f.items {
		if item.AccountID == ownerID {
			items = append(items, item)
		}
	}
	return items, nil
}

type fakeNotifier struct {
	emails []string
	tokens []string
	err    error
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, email)
	f.tokens = append(f.tokens, token)
	return nil
}
