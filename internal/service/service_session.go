package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/store"
	"github.com/quickflicks/quickflicks/models"
)

const tokenBytes = 32

// newToken generates an opaque session token and its storage digest. The raw
// value goes to the client; only the digest is ever persisted.
func newToken() (raw, digest string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating token: %w", err)
	}

	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

// hashToken returns the hex-encoded SHA-256 digest of a raw token.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// SessionService implements [Sessions] on top of the sessions table.
type SessionService struct {
	logger   *logger.Logger
	sessions store.SessionRepository
	ttl      time.Duration
}

// NewSessionService constructs a [SessionService] issuing tokens with the
// given lifetime.
func NewSessionService(sessions store.SessionRepository, ttl time.Duration, log *logger.Logger) *SessionService {
	log.Debug().Msg("creating session service")
	return &SessionService{
		logger:   log,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Issue creates a session for the account and returns the raw token.
func (s *SessionService) Issue(ctx context.Context, accountID int64) (string, error) {
	log := logger.FromContext(ctx)

	raw, digest, err := newToken()
	if err != nil {
		log.Err(err).Str("func", "*SessionService.Issue").Msg("error: generating session token")
		return "", err
	}

	session := models.Session{
		SessionID: uuid.NewString(),
		AccountID: accountID,
		TokenHash: digest,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if _, err = s.sessions.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*SessionService.Issue").Int64("account_id", accountID).Msg("error: persisting session")
		return "", fmt.Errorf("error creating session: %w", err)
	}

	return raw, nil
}

// Validate resolves a raw token to its account. Expired, revoked and unknown
// tokens all come back as ErrSessionInvalid.
func (s *SessionService) Validate(ctx context.Context, token string) (int64, string, error) {
	log := logger.FromContext(ctx)

	digest := hashToken(token)

	session, err := s.sessions.FindByTokenHash(ctx, digest)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, "", ErrSessionInvalid
		}

		log.Err(err).Str("func", "*SessionService.Validate").Msg("error: looking up session")
		return 0, "", fmt.Errorf("error validating session: %w", err)
	}

	if !session.Live(time.Now()) {
		log.Debug().
			Str("func", "*SessionService.Validate").
			Str("session_id", session.SessionID).
			Msg("session expired or revoked")
		return 0, "", ErrSessionInvalid
	}

	return session.AccountID, digest, nil
}

// Revoke terminates the session behind the raw token. Revoking an already
// dead session is a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if err := s.sessions.RevokeByTokenHash(ctx, hashToken(token)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SessionService.Revoke").Msg("error: revoking session")
		return fmt.Errorf("error revoking session: %w", err)
	}
	return nil
}

// RevokeAll terminates every live session of the account.
func (s *SessionService) RevokeAll(ctx context.Context, accountID int64) error {
	if err := s.sessions.RevokeAll(ctx, accountID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SessionService.RevokeAll").Int64("account_id", accountID).Msg("error: revoking sessions")
		return fmt.Errorf("error revoking sessions: %w", err)
	}
	return nil
}
