package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

// shelfRepository is the PostgreSQL-backed implementation of
// [ShelfRepository]. Every mutation is one guarded statement carrying the
// caller's account id in its WHERE clause, so ownership enforcement and the
// write serialize at the row — two concurrent changes to the same item
// cannot interleave into a torn record.
//
// The owner-gated queries scan a (updated id, actual owner) pair produced
// by a CTE; that lets the repository log "not found" and "not owner" as
// distinct events while callers merge them into one visible failure.
type shelfRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewShelfRepository constructs a [ShelfRepository] backed by the provided
// database connection and logger.
func NewShelfRepository(db *DB, logger *logger.Logger) ShelfRepository {
	logger.Debug().Msg("creating shelf repository")
	return &shelfRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertItem saves a catalog entry to the owner's shelf. When the
// (account_id, external_id) pair already exists the statement returns the
// pre-existing row untouched, making the add idempotent.
func (r *shelfRepository) UpsertItem(ctx context.Context, item models.SavedItem) (models.SavedItem, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertSavedItem, item.AccountID, item.ExternalID, item.Title, item.PosterURL)

	var saved models.SavedItem
	if err := row.Scan(
		&saved.ItemID,
		&saved.AccountID,
		&saved.ExternalID,
		&saved.Title,
		&saved.PosterURL,
		&saved.Status,
		&saved.Rating,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "*shelfRepository.UpsertItem").
			Int64("account_id", item.AccountID).
			Str("external_id", item.ExternalID).
			Msg("error: upserting saved item")
		return models.SavedItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// SetStatus assigns the shelf state and bumps updated_at in one statement.
// Status validity is the service's concern; ownership is enforced here.
func (r *shelfRepository) SetStatus(ctx context.Context, itemID, callerID int64, status models.Status) error {
	return r.ownerGated(ctx, "*shelfRepository.SetStatus", setSavedItemStatus, itemID, callerID, string(status))
}

// SetRating assigns the thumbs rating and bumps updated_at in one statement.
func (r *shelfRepository) SetRating(ctx context.Context, itemID, callerID int64, rating models.Rating) error {
	return r.ownerGated(ctx, "*shelfRepository.SetRating", setSavedItemRating, itemID, callerID, string(rating))
}

// DeleteItem hard-deletes the record when the caller owns it.
func (r *shelfRepository) DeleteItem(ctx context.Context, itemID, callerID int64) error {
	log := logger.FromContext(ctx)

	var deletedID *int64
	var ownerID int64

	row := r.db.QueryRowContext(ctx, deleteSavedItem, itemID, callerID)
	if err := row.Scan(&deletedID, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*shelfRepository.DeleteItem").Int64("item_id", itemID).Msg("item not found")
			return ErrItemNotFound
		}

		log.Err(err).Str("func", "*shelfRepository.DeleteItem").Int64("item_id", itemID).Msg("error: executing delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// row exists but the DELETE matched nothing: a different owner
	if deletedID == nil {
		log.Warn().
			Str("func", "*shelfRepository.DeleteItem").
			Int64("item_id", itemID).
			Int64("caller_id", callerID).
			Int64("owner_id", ownerID).
			Msg("delete refused: caller is not the owner")
		return ErrItemNotOwned
	}

	return nil
}

func (r *shelfRepository) ownerGated(ctx context.Context, funcName, query string, itemID, callerID int64, value string) error {
	log := logger.FromContext(ctx)

	var updatedID *int64
	var ownerID int64

	row := r.db.QueryRowContext(ctx, query, itemID, callerID, value)
	if err := row.Scan(&updatedID, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", funcName).Int64("item_id", itemID).Msg("item not found")
			return ErrItemNotFound
		}

		log.Err(err).Str("func", funcName).Int64("item_id", itemID).Msg("error: executing owner-gated update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// row exists but the UPDATE matched nothing: a different owner
	if updatedID == nil {
		log.Warn().
			Str("func", funcName).
			Int64("item_id", itemID).
			Int64("caller_id", callerID).
			Int64("owner_id", ownerID).
			Msg("mutation refused: caller is not the owner")
		return ErrItemNotOwned
	}

	return nil
}

// ListByOwner returns every saved item of the account ordered
// newest-created first. Grouping by status is left to the service.
func (r *shelfRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.SavedItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"item_id", "account_id", "external_id", "title", "poster_url",
		"status", "rating", "created_at", "updated_at",
	).
		From("saved_items").
		Where(sq.Eq{"account_id": ownerID}).
		OrderBy("created_at DESC", "item_id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*shelfRepository.ListByOwner").Int64("account_id", ownerID).Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*shelfRepository.ListByOwner").Int64("account_id", ownerID).Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.SavedItem, 0, 50)

	for rows.Next() {
		var item models.SavedItem

		if scanErr := rows.Scan(
			&item.ItemID,
			&item.AccountID,
			&item.ExternalID,
			&item.Title,
			&item.PosterURL,
			&item.Status,
			&item.Rating,
			&item.CreatedAt,
			&item.UpdatedAt,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "*shelfRepository.ListByOwner").Int64("account_id", ownerID).Msg("failed to scan saved item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*shelfRepository.ListByOwner").Int64("account_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}
