package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/store"
	"github.com/quickflicks/quickflicks/models"
)

// ShelfService implements [Shelf] on top of the saved-items repository.
//
// The repository distinguishes "no such item" from "item belongs to someone
// else"; this layer merges both into ErrItemNotFound before anything leaves
// the service boundary.
type ShelfService struct {
	logger *logger.Logger
	shelf  store.ShelfRepository
}

// NewShelfService constructs a [ShelfService].
func NewShelfService(shelf store.ShelfRepository, log *logger.Logger) *ShelfService {
	log.Debug().Msg("creating shelf service")
	return &ShelfService{
		logger: log,
		shelf:  shelf,
	}
}

// AddItem saves a catalog entry to the owner's shelf with the default status
// and rating. Saving the same entry twice returns the existing item.
func (s *ShelfService) AddItem(ctx context.Context, ownerID int64, req models.AddItemRequest) (models.SavedItem, error) {
	log := logger.FromContext(ctx)

	externalID := strings.TrimSpace(req.ExternalID)
	title := strings.TrimSpace(req.Title)
	if externalID == "" || title == "" {
		return models.SavedItem{}, fmt.Errorf("%w: external_id and title are required", ErrInvalidFormat)
	}

	item, err := s.shelf.UpsertItem(ctx, models.SavedItem{
		AccountID:  ownerID,
		ExternalID: externalID,
		Title:      title,
		PosterURL:  req.PosterURL,
	})
	if err != nil {
		log.Err(err).Str("func", "*ShelfService.AddItem").Int64("account_id", ownerID).Msg("error: saving item")
		return models.SavedItem{}, fmt.Errorf("error saving item: %w", err)
	}

	return item, nil
}

// SetStatus moves the item to another shelf state. Any valid state may be
// assigned from any other.
func (s *ShelfService) SetStatus(ctx context.Context, ownerID, itemID int64, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.mapOwnershipError(ctx, "*ShelfService.SetStatus",
		s.shelf.SetStatus(ctx, itemID, ownerID, status))
}

// SetRating assigns a thumbs rating independent of the item's status.
func (s *ShelfService) SetRating(ctx context.Context, ownerID, itemID int64, rating models.Rating) error {
	if !rating.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	return s.mapOwnershipError(ctx, "*ShelfService.SetRating",
		s.shelf.SetRating(ctx, itemID, ownerID, rating))
}

// RemoveItem deletes the item from the owner's shelf.
func (s *ShelfService) RemoveItem(ctx context.Context, ownerID, itemID int64) error {
	return s.mapOwnershipError(ctx, "*ShelfService.RemoveItem",
		s.shelf.DeleteItem(ctx, itemID, ownerID))
}

// mapOwnershipError folds the repository's not-found and not-owner cases
// into the single visible ErrItemNotFound.
func (s *ShelfService) mapOwnershipError(ctx context.Context, funcName string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrItemNotFound) || errors.Is(err, store.ErrItemNotOwned) {
		return ErrItemNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error: mutating saved item")
	return fmt.Errorf("error mutating saved item: %w", err)
}

// List returns the owner's collection grouped by status. Each group keeps
// the repository's newest-created-first order.
func (s *ShelfService) List(ctx context.Context, ownerID int64) (models.Shelf, error) {
	log := logger.FromContext(ctx)

	items, err := s.shelf.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*ShelfService.List").Int64("account_id", ownerID).Msg("error: listing shelf")
		return models.Shelf{}, fmt.Errorf("error listing shelf: %w", err)
	}

	shelf := models.Shelf{
		NewCandidates: make([]models.SavedItem, 0, len(items)),
		ToWatch:       make([]models.SavedItem, 0, len(items)),
		Watched:       make([]models.SavedItem, 0, len(items)),
	}

	for _, item := range items {
		switch item.Status {
		case models.StatusToWatch:
			shelf.ToWatch = append(shelf.ToWatch, item)
		case models.StatusWatched:
			shelf.Watched = append(shelf.Watched, item)
		default:
			shelf.NewCandidates = append(shelf.NewCandidates, item)
		}
	}

	return shelf, nil
}
