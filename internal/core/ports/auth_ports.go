package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
)

type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

type SignInResult struct {
	ID   uuid.UUID   `json:"id"`
	Role domain.Role `json:"role"`
	// Token is moved into the Authorization response header by the HTTP
	// boundary and cleared before the body is written.
	Token string `json:"token,omitempty"`
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (string, error)
	SignIn(ctx context.Context, email, password string, remember bool) (*SignInResult, error)
	SignOut(ctx context.Context, token string) (string, error)
	ForgotPassword(ctx context.Context, email, newPassword string) (string, error)
}

type TokenBlacklistRepository interface {
	Save(ctx context.Context, token *domain.BlacklistedToken) error
	// IsBlacklisted reports whether the exact token string is present and
	// not yet past its blacklist expiry.
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
