package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickflicks/quickflicks/internal/config"
	"github.com/quickflicks/quickflicks/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.Catalog{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	}, logger.Nop())
}

func TestSearch_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":603,"title":"The Matrix","poster_path":"/m.jpg"},
			{"id":604,"title":"The Matrix Reloaded","poster_path":null}
		]}`))
	})

	results, err := client.Search(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "603", results[0].ExternalID)
	assert.Equal(t, "The Matrix", results[0].Title)
	assert.Equal(t, "/m.jpg", results[0].PosterPath)
	assert.Empty(t, results[1].PosterPath)
}

func TestSearch_EmptyQuerySkipsNetwork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	})

	results, err := client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "matrix")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSearch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Search(context.Background(), "matrix")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSearch_Unreachable(t *testing.T) {
	client := NewClient(config.Catalog{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		APIKey:  "test-key",
		Timeout: time.Second,
	}, logger.Nop())

	_, err := client.Search(context.Background(), "matrix")
	assert.ErrorIs(t, err, ErrUnavailable)
}
