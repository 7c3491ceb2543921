package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/utils"
	"github.com/quickflicks/quickflicks/models"
)

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.account").Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	account, err := h.services.Auth.Account(r.Context(), accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.account").Msg("error loading account")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) changeUsername(w http.ResponseWriter, r *http.Request) {
	h.changeIdentifier(w, r, "*Handler.changeUsername", h.services.Auth.ChangeUsername)
}

func (h *Handler) changeEmail(w http.ResponseWriter, r *http.Request) {
	h.changeIdentifier(w, r, "*Handler.changeEmail", h.services.Auth.ChangeEmail)
}

// changeIdentifier is the shared body of the username and email endpoints:
// same request shape, same error mapping, different service call.
func (h *Handler) changeIdentifier(
	w http.ResponseWriter,
	r *http.Request,
	funcName string,
	change func(ctx context.Context, accountID int64, value, keepTokenHash string) (models.Account, error),
) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", funcName).Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	tokenHash, _ := utils.GetTokenHashFromContext(ctx)

	var req models.ChangeIdentifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", funcName).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := change(ctx, accountID, req.Value, tokenHash)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("identifier change failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.changePassword").Msg("no account id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	tokenHash, _ := utils.GetTokenHashFromContext(ctx)

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Auth.ChangePassword(ctx, accountID, req.CurrentPassword, req.NewPassword, tokenHash); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("password change failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
