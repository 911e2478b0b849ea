package ports

import "github.com/sharjeelfaiq/accounts-api/internal/core/domain"

// TokenClaims is the decoded content of a bearer token.
type TokenClaims struct {
	UserID   string
	Role     domain.Role
	Remember bool
}

type TokenService interface {
	GenerateAuthToken(role domain.Role, userID string, remember bool) (string, error)
	GenerateVerificationToken(userID string) (string, error)
	// DecodeToken verifies signature and expiry. Callers treat every failure
	// as "invalid or expired"; no failure kind is distinguished.
	DecodeToken(token string) (*TokenClaims, error)
	HashPassword(password string) (string, error)
}
