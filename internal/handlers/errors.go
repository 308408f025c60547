package handlers

import (
	"errors"
	"log"
	"net/http"

	"golf-backend/internal/services"
	"golf-backend/internal/upstream"
	"golf-backend/utils/response"
)

// writeError maps service and upstream errors to a status code. Unknown
// errors are logged and reported with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *services.ValidationError
	var uerr *upstream.Error

	switch {
	case errors.As(err, &verr):
		response.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrPlayerNotFound), errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, upstream.ErrUnavailable), errors.Is(err, services.ErrEmptyRanking):
		log.Printf("[http] %s: %v", fallback, err)
		response.Error(w, http.StatusBadGateway, "Upstream service unavailable")
	case errors.As(err, &uerr):
		log.Printf("[http] %s: %v", fallback, err)
		response.Error(w, http.StatusBadGateway, "Upstream request failed")
	default:
		log.Printf("[http] %s: %v", fallback, err)
		response.Error(w, http.StatusInternalServerError, fallback)
	}
}
