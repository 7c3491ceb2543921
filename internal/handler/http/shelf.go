package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/utils"
	"github.com/quickflicks/quickflicks/models"
)

func (h *Handler) listShelf(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.listShelf").Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	shelf, err := h.services.Shelf.List(r.Context(), accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listShelf").Msg("error listing shelf")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, shelf, http.StatusOK)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.addItem").Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.addItem").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.Shelf.AddItem(ctx, accountID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addItem").Msg("error saving item")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusCreated)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, itemID, ok := h.shelfItemParams(w, r, "*Handler.setStatus")
	if !ok {
		return
	}

	var req models.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setStatus").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Shelf.SetStatus(ctx, accountID, itemID, req.Status); err != nil {
		log.Err(err).Str("func", "*Handler.setStatus").Int64("item_id", itemID).Msg("error setting status")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, itemID, ok := h.shelfItemParams(w, r, "*Handler.setRating")
	if !ok {
		return
	}

	var req models.SetRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setRating").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Shelf.SetRating(ctx, accountID, itemID, req.Rating); err != nil {
		log.Err(err).Str("func", "*Handler.setRating").Int64("item_id", itemID).Msg("error setting rating")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, itemID, ok := h.shelfItemParams(w, r, "*Handler.removeItem")
	if !ok {
		return
	}

	if err := h.services.Shelf.RemoveItem(r.Context(), accountID, itemID); err != nil {
		log.Err(err).Str("func", "*Handler.removeItem").Int64("item_id", itemID).Msg("error removing item")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// shelfItemParams resolves the caller's account id from the context and the
// {itemID} url parameter. It writes the error response itself; callers just
// return when ok is false.
func (h *Handler) shelfItemParams(w http.ResponseWriter, r *http.Request, funcName string) (accountID, itemID int64, ok bool) {
	log := logger.FromRequest(r)

	accountID, ok = utils.GetAccountIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", funcName).Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, 0, false
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("invalid item id")
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return 0, 0, false
	}

	return accountID, itemID, true
}
