package http

import (
	"errors"
	"net/http"

	"github.com/fieldcare/clinsync/internal/service"
	"github.com/fieldcare/clinsync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:           http.StatusBadRequest,
	service.ErrWrongDeviceKey:                http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:       http.StatusUnauthorized,
	service.ErrValidationNoDocumentsProvided: http.StatusBadRequest,
	service.ErrValidationNoIDsProvided:       http.StatusBadRequest,

	store.ErrDeviceExists:      http.StatusConflict,
	store.ErrDeviceNotFound:    http.StatusNotFound,
	store.ErrDocumentNotFound:  http.StatusNotFound,
	store.ErrRevisionMismatch:  http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
