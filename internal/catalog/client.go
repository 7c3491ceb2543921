// Package catalog is the outbound gateway to the external movie catalog.
// It exposes one operation, title search, and degrades instead of failing:
// any transport or upstream problem surfaces as ErrUnavailable so the search
// endpoint can answer with an empty result set and a notice.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/quickflicks/quickflicks/internal/config"
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/models"
)

// ErrUnavailable means the catalog could not be reached or answered with an
// error. Callers treat it as "no results right now", never as a request
// failure of their own.
var ErrUnavailable = errors.New("movie catalog is unavailable")

// Client talks to a TMDB-compatible catalog API.
type Client struct {
	logger *logger.Logger
	client *resty.Client
	apiKey string
}

// NewClient constructs a catalog [Client] from configuration. Every lookup
// is bounded by cfg.Timeout.
func NewClient(cfg config.Catalog, log *logger.Logger) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	log.Debug().Str("base_url", cfg.BaseURL).Msg("creating catalog client")

	return &Client{
		logger: log,
		client: cli,
		apiKey: cfg.APIKey,
	}
}

// searchPayload mirrors the catalog's search response. Fields the service
// never uses are not decoded.
type searchPayload struct {
	Results []struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// Search queries the catalog for movies matching the given title fragment.
// An empty query returns an empty slice without touching the network.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	log := logger.FromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("query", query).
		Get("/search/movie")
	if err != nil {
		log.Warn().Err(err).Str("func", "*Client.Search").Msg("catalog request failed")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		log.Warn().
			Str("func", "*Client.Search").
			Int("status", resp.StatusCode()).
			Msg("catalog answered with an error status")
		return nil, fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode())
	}

	var payload searchPayload
	if err = json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Warn().Err(err).Str("func", "*Client.Search").Msg("catalog answered with an unreadable body")
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	results := make([]models.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, models.SearchResult{
			ExternalID: strconv.FormatInt(r.ID, 10),
			Title:      r.Title,
			PosterPath: r.PosterPath,
		})
	}

	return results, nil
}
