package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// AuthMiddleware guards routes behind a valid, non-blacklisted bearer token.
type AuthMiddleware struct {
	tokens    ports.TokenService
	blacklist ports.TokenBlacklistRepository
	log       *slog.Logger
}

func NewAuthMiddleware(tokens ports.TokenService, blacklist ports.TokenBlacklistRepository, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		blacklist: blacklist,
		log:       log,
	}
}

func (m *AuthMiddleware) VerifyAuthToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondWithError(w, m.log, domain.ErrInvalidOrExpiredToken)
			return
		}

		claims, err := m.tokens.DecodeToken(token)
		if err != nil {
			respondWithError(w, m.log, domain.ErrInvalidOrExpiredToken)
			return
		}

		// A blacklisted token that has not yet expired must be rejected.
		blacklisted, err := m.blacklist.IsBlacklisted(r.Context(), token)
		if err != nil {
			respondWithError(w, m.log, err)
			return
		}
		if blacklisted {
			respondWithError(w, m.log, domain.ErrInvalidOrExpiredToken)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			respondWithError(w, m.log, domain.ErrInvalidOrExpiredToken)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
