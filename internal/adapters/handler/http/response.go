package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
)

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondWithError maps a tagged domain error to its status and message.
// Anything else is logged and surfaces as a bare 500.
func respondWithError(w http.ResponseWriter, log *slog.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		respondWithJSON(w, domainErr.Status, map[string]string{"error": domainErr.Message})
		return
	}

	log.Error("unhandled error", "error", err)
	respondWithJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
