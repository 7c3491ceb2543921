package http

import (
	"errors"
	"net/http"

	"github.com/quickflicks/quickflicks/internal/catalog"
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/utils"
	"github.com/quickflicks/quickflicks/models"
)

const catalogDegradedNotice = "movie catalog is temporarily unavailable, try again later"

// search proxies the query to the external catalog. An unavailable catalog
// is not the caller's problem: the endpoint still answers 200 with an empty
// result set and a notice.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := r.URL.Query().Get("query")

	results, err := h.services.Catalog.Search(r.Context(), query)
	if err != nil {
		if !errors.Is(err, catalog.ErrUnavailable) {
			log.Err(err).Str("func", "*Handler.search").Msg("unexpected error occurred during catalog search")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		log.Warn().Err(err).Str("func", "*Handler.search").Msg("catalog degraded, answering with empty results")
		utils.WriteJSON(w, models.SearchResponse{
			Query:   query,
			Results: []models.SearchResult{},
			Notice:  catalogDegradedNotice,
		}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.SearchResponse{
		Query:   query,
		Results: results,
	}, http.StatusOK)
}
