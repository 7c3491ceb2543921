package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/store"
	"github.com/quickflicks/quickflicks/models"
)

// usernamePattern constrains usernames to 3-20 characters of letters,
// digits and underscore.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

const minPasswordLength = 8

// AuthService implements [Auth]: registration, login, credential changes
// and the password-reset flow.
type AuthService struct {
	logger      *logger.Logger
	accounts    store.AccountRepository
	sessions    store.SessionRepository
	resetTokens store.ResetTokenRepository
	notifier    Notifier
	resetTTL    time.Duration
}

// NewAuthService constructs an [AuthService].
func NewAuthService(
	accounts store.AccountRepository,
	sessions store.SessionRepository,
	resetTokens store.ResetTokenRepository,
	notifier Notifier,
	resetTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	log.Debug().Msg("creating auth service")
	return &AuthService{
		logger:      log,
		accounts:    accounts,
		sessions:    sessions,
		resetTokens: resetTokens,
		notifier:    notifier,
		resetTTL:    resetTTL,
	}
}

func validUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	// reject the "Name <addr>" form: only a bare address is an identifier
	return err == nil && addr.Address == email
}

func validPassword(password string) bool {
	return len(password) >= minPasswordLength
}

// Register validates the submitted fields, hashes the password and creates
// the account. A taken username or e-mail yields ErrDuplicateIdentifier.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !validUsername(username) {
		return models.Account{}, fmt.Errorf("%w: username must be 3-20 characters of letters, digits or underscore", ErrInvalidFormat)
	}
	if !validEmail(email) {
		return models.Account{}, fmt.Errorf("%w: malformed email address", ErrInvalidFormat)
	}
	if !validPassword(password) {
		return models.Account{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidFormat, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*AuthService.Register").Msg("error: hashing password")
		return models.Account{}, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIdentifier) {
			return models.Account{}, ErrDuplicateIdentifier
		}

		log.Err(err).Str("func", "*AuthService.Register").Msg("error: creating account")
		return models.Account{}, fmt.Errorf("error creating account: %w", err)
	}

	log.Info().
		Str("func", "*AuthService.Register").
		Int64("account_id", account.AccountID).
		Msg("account registered")

	return account, nil
}

// Authenticate resolves the identifier as a username first and as an e-mail
// second, then verifies the password. Unknown identifier, wrong password and
// inactive account are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.resolveIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug().Str("func", "*AuthService.Authenticate").Msg("identifier did not resolve to an account")
			return models.Account{}, ErrInvalidCredentials
		}

		log.Err(err).Str("func", "*AuthService.Authenticate").Msg("error: resolving identifier")
		return models.Account{}, fmt.Errorf("error resolving identifier: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		log.Debug().Str("func", "*AuthService.Authenticate").Int64("account_id", account.AccountID).Msg("password mismatch")
		return models.Account{}, ErrInvalidCredentials
	}

	if !account.IsActive {
		log.Warn().Str("func", "*AuthService.Authenticate").Int64("account_id", account.AccountID).Msg("login refused: account inactive")
		return models.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// resolveIdentifier tries the username namespace before the e-mail one, so
// an identifier matching both always resolves as a username.
func (s *AuthService) resolveIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, identifier)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, err
	}

	return s.accounts.FindByEmail(ctx, identifier)
}

// Account returns the account behind the id.
func (s *AuthService) Account(ctx context.Context, accountID int64) (models.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*AuthService.Account").Int64("account_id", accountID).Msg("error: loading account")
		return models.Account{}, fmt.Errorf("error loading account: %w", err)
	}
	return account, nil
}

// ChangeUsername installs a new username and revokes every other session of
// the account.
func (s *AuthService) ChangeUsername(ctx context.Context, accountID int64, username, keepTokenHash string) (models.Account, error) {
	if !validUsername(username) {
		return models.Account{}, fmt.Errorf("%w: username must be 3-20 characters of letters, digits or underscore", ErrInvalidFormat)
	}

	account, err := s.accounts.UpdateUsername(ctx, accountID, username)
	if err != nil {
		return models.Account{}, s.mapIdentifierUpdateError(ctx, "*AuthService.ChangeUsername", err)
	}

	if err = s.revokeOthers(ctx, accountID, keepTokenHash); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// ChangeEmail installs a new e-mail address and revokes every other session
// of the account.
func (s *AuthService) ChangeEmail(ctx context.Context, accountID int64, email, keepTokenHash string) (models.Account, error) {
	if !validEmail(email) {
		return models.Account{}, fmt.Errorf("%w: malformed email address", ErrInvalidFormat)
	}

	account, err := s.accounts.UpdateEmail(ctx, accountID, email)
	if err != nil {
		return models.Account{}, s.mapIdentifierUpdateError(ctx, "*AuthService.ChangeEmail", err)
	}

	if err = s.revokeOthers(ctx, accountID, keepTokenHash); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (s *AuthService) mapIdentifierUpdateError(ctx context.Context, funcName string, err error) error {
	if errors.Is(err, store.ErrDuplicateIdentifier) {
		return ErrDuplicateIdentifier
	}

	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error: updating identifier")
	return fmt.Errorf("error updating identifier: %w", err)
}

// ChangePassword verifies the current password, installs the new hash and
// revokes every other session.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword, keepTokenHash string) error {
	log := logger.FromContext(ctx)

	if !validPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidFormat, minPasswordLength)
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*AuthService.ChangePassword").Int64("account_id", accountID).Msg("error: loading account")
		return fmt.Errorf("error loading account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		log.Debug().Str("func", "*AuthService.ChangePassword").Int64("account_id", accountID).Msg("current password mismatch")
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*AuthService.ChangePassword").Msg("error: hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = s.accounts.UpdatePasswordHash(ctx, accountID, string(hash)); err != nil {
		log.Err(err).Str("func", "*AuthService.ChangePassword").Int64("account_id", accountID).Msg("error: updating password hash")
		return fmt.Errorf("error updating password: %w", err)
	}

	if err = s.revokeOthers(ctx, accountID, keepTokenHash); err != nil {
		return err
	}

	log.Info().Str("func", "*AuthService.ChangePassword").Int64("account_id", accountID).Msg("password changed")
	return nil
}

// revokeOthers kills the account's other sessions after a credential change.
// Invalidating them is part of the change's contract, not cleanup: a failure
// here must reach the caller so the change is never reported as fully done
// while stale sessions stay valid. The already-committed change itself stands.
func (s *AuthService) revokeOthers(ctx context.Context, accountID int64, keepTokenHash string) error {
	if err := s.sessions.RevokeOthers(ctx, accountID, keepTokenHash); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*AuthService.revokeOthers").
			Int64("account_id", accountID).
			Msg("error: revoking other sessions after credential change")
		return fmt.Errorf("error revoking other sessions: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a one-time reset token for the account behind
// the e-mail and hands it to the notifier. An unknown e-mail succeeds
// silently so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug().Str("func", "*AuthService.RequestPasswordReset").Msg("reset requested for unknown email")
			return nil
		}

		log.Err(err).Str("func", "*AuthService.RequestPasswordReset").Msg("error: looking up account")
		return fmt.Errorf("error looking up account: %w", err)
	}

	buf := make([]byte, tokenBytes)
	if _, err = rand.Read(buf); err != nil {
		log.Err(err).Str("func", "*AuthService.RequestPasswordReset").Msg("error: generating reset token")
		return fmt.Errorf("error generating reset token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	expiresAt := time.Now().Add(s.resetTTL)
	if err = s.resetTokens.CreateResetToken(ctx, account.AccountID, uuid.NewString(), hashToken(raw), expiresAt); err != nil {
		log.Err(err).Str("func", "*AuthService.RequestPasswordReset").Int64("account_id", account.AccountID).Msg("error: persisting reset token")
		return fmt.Errorf("error persisting reset token: %w", err)
	}

	if err = s.notifier.SendPasswordReset(ctx, account.Email, raw); err != nil {
		log.Err(err).Str("func", "*AuthService.RequestPasswordReset").Int64("account_id", account.AccountID).Msg("error: delivering reset token")
		return fmt.Errorf("error delivering reset token: %w", err)
	}

	return nil
}

// ConfirmPasswordReset consumes the token, installs the new password and
// revokes every live session of the account. Expired, consumed and unknown
// tokens all come back as ErrResetTokenInvalid.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if !validPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidFormat, minPasswordLength)
	}

	accountID, err := s.resetTokens.ConsumeResetToken(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrResetTokenNotFound) {
			log.Debug().Str("func", "*AuthService.ConfirmPasswordReset").Msg("reset token did not resolve")
			return ErrResetTokenInvalid
		}

		log.Err(err).Str("func", "*AuthService.ConfirmPasswordReset").Msg("error: consuming reset token")
		return fmt.Errorf("error consuming reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*AuthService.ConfirmPasswordReset").Msg("error: hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = s.accounts.UpdatePasswordHash(ctx, accountID, string(hash)); err != nil {
		log.Err(err).Str("func", "*AuthService.ConfirmPasswordReset").Int64("account_id", accountID).Msg("error: updating password hash")
		return fmt.Errorf("error updating password: %w", err)
	}

	// a reset implies the old credential may be compromised: every session
	// dies, and a failure to kill them fails the whole operation
	if err = s.sessions.RevokeAll(ctx, accountID); err != nil {
		log.Err(err).Str("func", "*AuthService.ConfirmPasswordReset").Int64("account_id", accountID).Msg("error: revoking sessions after password reset")
		return fmt.Errorf("error revoking sessions: %w", err)
	}

	log.Info().Str("func", "*AuthService.ConfirmPasswordReset").Int64("account_id", accountID).Msg("password reset completed")
	return nil
}
