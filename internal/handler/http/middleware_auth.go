// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/service"
	"github.com/quickflicks/quickflicks/internal/utils"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, validates it via [service.Sessions.Validate], and — on success —
// stores the account id under [utils.AccountIDCtxKey] and the token digest
// under [utils.TokenHashCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]);
//   - the session is expired, revoked or unknown ([service.ErrSessionInvalid]).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		accountID, tokenHash, err := h.services.Sessions.Validate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionInvalid):
				log.Err(err).Msg("session rejected")
				http.Error(w, service.ErrSessionInvalid.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during session validation")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-validating the token.
		ctx = context.WithValue(ctx, utils.AccountIDCtxKey, accountID)
		ctx = context.WithValue(ctx, utils.TokenHashCtxKey, tokenHash)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	token := parts[1]
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
