package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/nakamurapomeo/collage-app/pkg/errors"
	"github.com/nakamurapomeo/collage-app/pkg/store"
)

// errorResponse is the JSON shape of all error replies.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application error codes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if errors.Is(err, store.ErrNotFound) {
		code = apperrors.ErrCodeAlbumNotFound
	}
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidAlbum,
		apperrors.ErrCodeInvalidItem,
		apperrors.ErrCodeInvalidDimensions,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeAlbumNotFound,
		apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeStore:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: apperrors.UserMessage(err),
		},
	})
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, format, args...))
}
