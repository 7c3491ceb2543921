package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/service"
	"github.com/quickflicks/quickflicks/internal/utils"
	"github.com/quickflicks/quickflicks/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.Auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFormat):
			log.Err(err).Str("func", "*Handler.register").Msg("invalid registration data")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrDuplicateIdentifier):
			log.Err(err).Str("func", "*Handler.register").Msg("identifier already taken")
			http.Error(w, service.ErrDuplicateIdentifier.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Str("func", "*Handler.register").Msg("unexpected error occurred during registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.Sessions.Issue(ctx, account.AccountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("issuing session failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.Auth.Authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Str("func", "*Handler.login").Msg("login refused")
			http.Error(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Str("func", "*Handler.login").Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("func", "*Handler.login").Int64("account_id", account.AccountID).Msg("account logged in")

	token, err := h.services.Sessions.Issue(ctx, account.AccountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("issuing session failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token}, http.StatusOK)
}

// logout revokes the session that authenticated this request. The auth
// middleware already verified the header, so parsing cannot fail here.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	token, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.logout").Send()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err = h.services.Sessions.Revoke(r.Context(), token); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("error revoking session")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) passwordReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.passwordReset").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// an unknown email also lands here: the response must not reveal
	// whether the address exists
	if err := h.services.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		log.Err(err).Str("func", "*Handler.passwordReset").Msg("error requesting password reset")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PasswordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.passwordResetConfirm").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Auth.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
		log.Err(err).Str("func", "*Handler.passwordResetConfirm").Msg("password reset confirmation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
