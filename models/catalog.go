package models

// SearchResult is a single movie returned by the external catalog.
// Only the fields needed to render a result and later save it are kept.
type SearchResult struct {
	// ExternalID is the catalog's identifier for the movie, kept as a
	// string so the service never depends on the catalog's id scheme.
	ExternalID string `json:"external_id"`

	// Title is the display title.
	Title string `json:"title"`

	// PosterPath is the poster URL path. Empty when the catalog has none.
	PosterPath string `json:"poster_path,omitempty"`
}
