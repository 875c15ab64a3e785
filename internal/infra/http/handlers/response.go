package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeUsecaseError maps store and generator errors onto status codes.
// Validation and not-found messages are shown as is; anything else is
// logged and reported as a generic server error.
func writeUsecaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		writeErrorResponse(w, http.StatusBadRequest, ve.Message)
		return
	}

	var nf *usecase.NotFoundError
	if errors.As(err, &nf) {
		writeErrorResponse(w, http.StatusNotFound, nf.Error())
		return
	}

	logger.Error("request failed", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
}
