package http

import (
	"errors"
	"net/http"

	"github.com/quickflicks/quickflicks/internal/service"
	"github.com/quickflicks/quickflicks/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidFormat:       http.StatusBadRequest,
	service.ErrInvalidStatus:       http.StatusBadRequest,
	service.ErrInvalidRating:       http.StatusBadRequest,
	service.ErrResetTokenInvalid:   http.StatusBadRequest,
	service.ErrDuplicateIdentifier: http.StatusConflict,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrSessionInvalid:      http.StatusUnauthorized,
	service.ErrItemNotFound:        http.StatusNotFound,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommitingTransaction:  http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
