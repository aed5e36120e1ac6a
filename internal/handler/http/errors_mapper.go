package http

import (
	"errors"
	"net/http"

	"github.com/XiaoChennnng/Deadliner-Client/internal/settings"
	"github.com/XiaoChennnng/Deadliner-Client/internal/store"
	"github.com/XiaoChennnng/Deadliner-Client/internal/webdav"
)

var errorStatusMap = map[error]int{
	store.ErrInvalidInput:          http.StatusBadRequest,
	store.ErrTaskNotFound:          http.StatusNotFound,
	store.ErrCategoryNotFound:      http.StatusNotFound,
	store.ErrTaskAlreadyExists:     http.StatusConflict,
	store.ErrCategoryAlreadyExists: http.StatusConflict,
	store.ErrCheckinAlreadyExists:  http.StatusConflict,

	settings.ErrInvalidImport:          http.StatusBadRequest,
	settings.ErrSecureStoreUnavailable: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}

	var webdavErr *webdav.Error
	if errors.As(err, &webdavErr) {
		switch webdavErr.Kind {
		case webdav.KindConfigIncomplete:
			return http.StatusBadRequest
		case webdav.KindUnauthorized:
			return http.StatusUnauthorized
		case webdav.KindNotFound:
			return http.StatusNotFound
		case webdav.KindConnectionFailed:
			return http.StatusBadGateway
		case webdav.KindMalformedResponse:
			return http.StatusBadGateway
		}
	}

	return http.StatusInternalServerError
}
