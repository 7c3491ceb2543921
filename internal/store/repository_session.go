package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. The sessions table stores only token hashes; all
// revocation operations are plain UPDATEs, so a revoke committed here is
// observed by every later FindByTokenHash without any cache to invalidate.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row and returns it with the
// server-assigned issue timestamp.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSession, session.SessionID, session.AccountID, session.TokenHash, session.ExpiresAt)
	if err := row.Scan(&session.IssuedAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Int64("account_id", session.AccountID).Msg("error: session insert failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// FindByTokenHash retrieves the session row matching the token hash.
// Liveness (expiry, revocation) is judged by the caller so that all
// invalid-session cases collapse into one externally visible error there.
func (r *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var found models.Session
	row := r.db.QueryRowContext(ctx, findSessionByTokenHash, tokenHash)

	if err := row.Scan(
		&found.SessionID,
		&found.AccountID,
		&found.TokenHash,
		&found.IssuedAt,
		&found.ExpiresAt,
		&found.RevokedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindByTokenHash").Msg("error: scanning session row")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// RevokeByTokenHash marks a single session revoked. Revoking a session that
// is already revoked or unknown is a no-op, matching the terminal nature of
// the REVOKED state.
func (r *sessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return r.revoke(ctx, "*sessionRepository.RevokeByTokenHash", revokeSessionByTokenHash, tokenHash)
}

// RevokeAll revokes every live session bound to the account.
func (r *sessionRepository) RevokeAll(ctx context.Context, accountID int64) error {
	return r.revoke(ctx, "*sessionRepository.RevokeAll", revokeAllSessions, accountID)
}

// RevokeOthers revokes every live session of the account except the one
// identified by keepTokenHash.
func (r *sessionRepository) RevokeOthers(ctx context.Context, accountID int64, keepTokenHash string) error {
	return r.revoke(ctx, "*sessionRepository.RevokeOthers", revokeOtherSessions, accountID, keepTokenHash)
}

func (r *sessionRepository) revoke(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: executing session revocation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// resetTokenRepository is the PostgreSQL-backed implementation of
// [ResetTokenRepository].
type resetTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResetTokenRepository constructs a [ResetTokenRepository] backed by the
// provided database connection and logger.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateResetToken persists a new one-time reset token hash with its expiry.
func (r *resetTokenRepository) CreateResetToken(ctx context.Context, accountID int64, tokenID, tokenHash string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createResetToken, tokenID, accountID, tokenHash, expiresAt); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.CreateResetToken").Int64("account_id", accountID).Msg("error: reset token insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// ConsumeResetToken marks the token used and returns the owning account id.
// The consumed/expiry predicates live in the UPDATE itself, so two racing
// confirmations of the same token resolve to one winner.
func (r *resetTokenRepository) ConsumeResetToken(ctx context.Context, tokenHash string) (int64, error) {
	log := logger.FromContext(ctx)

	var accountID int64
	row := r.db.QueryRowContext(ctx, consumeResetToken, tokenHash)

	if err := row.Scan(&accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrResetTokenNotFound
		}

		log.Err(err).Str("func", "*resetTokenRepository.ConsumeResetToken").Msg("error: consuming reset token")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return accountID, nil
}
