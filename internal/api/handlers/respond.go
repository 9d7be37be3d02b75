package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status. Internal
// details stay in the log; the client gets the safe message only.
func respondWithAppError(w http.ResponseWriter, err error) {
	status := apperrors.StatusFor(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		respondWithError(w, status, appErr.Message)
		return
	}

	log.Error().Err(err).Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
