package models

import "time"

// Status is the shelf state of a saved item. Any status may be assigned
// from any other status: re-shelving is unrestricted by design.
type Status string

// Shelf states.
const (
	StatusNewCandidate Status = "NEW_CANDIDATE"
	StatusToWatch      Status = "TO_WATCH"
	StatusWatched      Status = "WATCHED"
)

// Valid reports whether s is one of the enumerated shelf states.
func (s Status) Valid() bool {
	switch s {
	case StatusNewCandidate, StatusToWatch, StatusWatched:
		return true
	}
	return false
}

// Rating is the thumbs-up/down axis of a saved item, independent of Status.
type Rating string

// Ratings.
const (
	RatingUnrated    Rating = "UNRATED"
	RatingThumbsUp   Rating = "THUMBS_UP"
	RatingThumbsDown Rating = "THUMBS_DOWN"
)

// Valid reports whether r is one of the enumerated ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingUnrated, RatingThumbsUp, RatingThumbsDown:
		return true
	}
	return false
}

// SavedItem is a catalog entry saved to one account's shelf.
//
// The (AccountID, ExternalID) pair is unique: saving the same catalog item
// twice returns the existing record instead of duplicating it. AccountID is
// fixed at creation; only the owner may mutate or remove the item.
type SavedItem struct {
	// ItemID is the internal unique identifier of the saved item.
	ItemID int64 `json:"item_id"`

	// AccountID is the owning account. Immutable after creation.
	AccountID int64 `json:"-"`

	// ExternalID is the identifier of the movie in the external catalog.
	ExternalID string `json:"external_id"`

	// Title is the display title captured at save time.
	Title string `json:"title"`

	// PosterURL is the optional poster path. Empty when the catalog had none.
	PosterURL string `json:"poster_url,omitempty"`

	// Status is the current shelf state.
	Status Status `json:"status"`

	// Rating is the current thumbs rating.
	Rating Rating `json:"rating"`

	// CreatedAt is set once when the item is saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every status or rating change.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the SavedItem model.
func (i SavedItem) TableName() string {
	return "saved_items"
}

// Shelf is one account's collection grouped by status. Each slice is
// ordered newest-created first.
type Shelf struct {
	NewCandidates []SavedItem `json:"new_candidates"`
	ToWatch       []SavedItem `json:"to_watch"`
	Watched       []SavedItem `json:"watched"`
}
