package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

func newShelfFixture(t *testing.T) (*ShelfService, *fakeShelfRepo) {
	t.Helper()

	repo := newFakeShelfRepo()
	return NewShelfService(repo, logger.Nop()), repo
}

func TestAddItem(t *testing.T) {
	svc, _ := newShelfFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "603", Title: "The Matrix", PosterURL: "/m.jpg"})
	require.NoError(t, err)

	assert.NotZero(t, item.ItemID)
	assert.Equal(t, models.StatusNewCandidate, item.Status)
	assert.Equal(t, models.RatingUnrated, item.Rating)

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "603", Title: "The Matrix"})
		require.NoError(t, err)
		assert.Equal(t, item.ItemID, again.ItemID)
	})

	t.Run("same catalog entry, different owners", func(t *testing.T) {
		other, err := svc.AddItem(ctx, 2, models.AddItemRequest{ExternalID: "603", Title: "The Matrix"})
		require.NoError(t, err)
		assert.NotEqual(t, item.ItemID, other.ItemID)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "", Title: "The Matrix"})
		assert.ErrorIs(t, err, ErrInvalidFormat)

		_, err = svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "604", Title: "   "})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestSetStatus(t *testing.T) {
	svc, _ := newShelfFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "603", Title: "The Matrix"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, 1, item.ItemID, models.StatusWatched))

		shelf, err := svc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, shelf.Watched, 1)
		assert.Empty(t, shelf.NewCandidates)
	})

	t.Run("any transition allowed", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, 1, item.ItemID, models.StatusNewCandidate))
		require.NoError(t, svc.SetStatus(ctx, 1, item.ItemID, models.StatusToWatch))
	})

	t.Run("invalid status", func(t *testing.T) {
		err := svc.SetStatus(ctx, 1, item.ItemID, models.Status("BINGED"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown item", func(t *testing.T) {
		err := svc.SetStatus(ctx, 1, 9999, models.StatusWatched)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("foreign item reads as not found", func(t *testing.T) {
		err := svc.SetStatus(ctx, 2, item.ItemID, models.StatusWatched)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestSetRating(t *testing.T) {
	svc, _ := newShelfFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "603", Title: "The Matrix"})
	require.NoError(t, err)

	require.NoError(t, svc.SetRating(ctx, 1, item.ItemID, models.RatingThumbsUp))

	// rating is independent of status
	shelf, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, shelf.NewCandidates, 1)
	assert.Equal(t, models.RatingThumbsUp, shelf.NewCandidates[0].Rating)

	err = svc.SetRating(ctx, 1, item.ItemID, models.Rating("FIVE_STARS"))
	assert.ErrorIs(t, err, ErrInvalidRating)

	err = svc.SetRating(ctx, 2, item.ItemID, models.RatingThumbsDown)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newShelfFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "603", Title: "The Matrix"})
	require.NoError(t, err)

	t.Run("foreign item reads as not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveItem(ctx, 2, item.ItemID), ErrItemNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.RemoveItem(ctx, 1, item.ItemID))

		shelf, err := svc.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, shelf.NewCandidates)
	})

	t.Run("second remove fails", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveItem(ctx, 1, item.ItemID), ErrItemNotFound)
	})
}

func TestList_GroupsByStatus(t *testing.T) {
	svc, _ := newShelfFixture(t)
	ctx := context.Background()

	a, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "1", Title: "A"})
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "2", Title: "B"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, models.AddItemRequest{ExternalID: "3", Title: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, 1, a.ItemID, models.StatusToWatch))
	require.NoError(t, svc.SetStatus(ctx, 1, b.ItemID, models.StatusWatched))

	shelf, err := svc.List(ctx, 1)
	require.NoError(t, err)

	assert.Len(t, shelf.NewCandidates, 1)
	assert.Len(t, shelf.ToWatch, 1)
	assert.Len(t, shelf.Watched, 1)
}

func TestList_EmptyShelf(t *testing.T) {
	svc, _ := newShelfFixture(t)

	shelf, err := svc.List(context.Background(), 42)
	require.NoError(t, err)

	// groups serialize as [] rather than null
	assert.NotNil(t, shelf.NewCandidates)
	assert.NotNil(t, shelf.ToWatch)
	assert.NotNil(t, shelf.Watched)
}
