package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

// blacklistTTL is how long a signed-out token stays on the blacklist.
// Removal of expired entries is an external cleanup job's concern.
const blacklistTTL = time.Hour

// AuthService orchestrates the credential lifecycle: sign-up, sign-in,
// sign-out and password reset.
type AuthService struct {
	users     ports.UserRepository
	blacklist ports.TokenBlacklistRepository
	tokens    ports.TokenService
	mailer    ports.Mailer
	log       *slog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	blacklist ports.TokenBlacklistRepository,
	tokens ports.TokenService,
	mailer ports.Mailer,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		tokens:    tokens,
		mailer:    mailer,
		log:       log,
	}
}

func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (string, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return "", domain.ErrDuplicateEmail
	}

	hashed, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return "", domain.ErrPasswordHashFailed
	}

	user := &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserName:  deriveUserName(in.FirstName, in.Email),
		Email:     in.Email,
		Password:  hashed,
		Role:      in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the real uniqueness enforcement point; the
		// pre-check above only narrows the race window.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", domain.ErrDuplicateEmail
		}
		s.log.Error("user creation failed", "email", in.Email, "error", err)
		return "", domain.ErrCreationFailed
	}

	verification, err := s.tokens.GenerateVerificationToken(user.ID.String())
	if err != nil {
		return "", domain.ErrTokenGenerationFailed
	}

	// The created user stays in place when delivery fails; there is no
	// rollback on this path.
	if err := s.mailer.SendVerificationEmail(ctx, in.Email, verification); err != nil {
		s.log.Error("verification email failed", "email", in.Email, "error", err)
		return "", domain.ErrEmailDeliveryFailed
	}

	return "User registered successfully", nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string, remember bool) (*ports.SignInResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil || !user.ComparePassword(password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAuthToken(user.Role, user.ID.String(), remember)
	if err != nil {
		return nil, domain.ErrTokenGenerationFailed
	}

	return &ports.SignInResult{ID: user.ID, Role: user.Role, Token: token}, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.DecodeToken(token)
	if err != nil {
		return "", domain.ErrInvalidOrExpiredToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", domain.ErrInvalidOrExpiredToken
	}

	entry := &domain.BlacklistedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(blacklistTTL),
	}
	if err := s.blacklist.Save(ctx, entry); err != nil {
		s.log.Error("token blacklisting failed", "user_id", claims.UserID, "error", err)
		return "", domain.ErrBlacklistFailed
	}

	return "Sign-out successful. The token has been invalidated.", nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email, newPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrUnknownEmail
	}

	verification, err := s.tokens.GenerateVerificationToken(user.ID.String())
	if err != nil {
		return "", domain.ErrTokenGenerationFailed
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, email, verification); err != nil {
		s.log.Error("password reset email failed", "email", email, "error", err)
		return "", domain.ErrEmailDeliveryFailed
	}

	// The hash must exist before the update can store it.
	hashed, err := s.tokens.HashPassword(newPassword)
	if err != nil {
		return "", domain.ErrPasswordHashFailed
	}

	updated, err := s.users.UpdatePasswordByEmail(ctx, email, hashed)
	if err != nil || !updated {
		return "", domain.ErrPasswordUpdateFailed
	}

	return "Password updated successfully", nil
}

// deriveUserName builds the display username: the lowercased first name
// followed by the first 8 hex chars of SHA-256(email). Collisions are
// possible and not checked; this is not a security-relevant identifier.
func deriveUserName(firstName, email string) string {
	sum := sha256.Sum256([]byte(email))
	return strings.ToLower(firstName + hex.EncodeToString(sum[:])[:8])
}
