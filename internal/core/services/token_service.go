package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Role     string `json:"role,omitempty"`
	Remember bool   `json:"remember,omitempty"`
}

// TokenService issues and decodes HS256-signed bearer tokens and hashes
// passwords. Tokens are stateless; validity is signature plus expiry.
type TokenService struct {
	secret          []byte
	authTTL         time.Duration
	rememberTTL     time.Duration
	verificationTTL time.Duration
}

func NewTokenService(secret []byte, authTTL, rememberTTL, verificationTTL time.Duration) *TokenService {
	return &TokenService{
		secret:          secret,
		authTTL:         authTTL,
		rememberTTL:     rememberTTL,
		verificationTTL: verificationTTL,
	}
}

// GenerateAuthToken signs a session credential. The remember flag selects the
// long-lived expiry.
func (s *TokenService) GenerateAuthToken(role domain.Role, userID string, remember bool) (string, error) {
	ttl := s.authTTL
	if remember {
		ttl = s.rememberTTL
	}
	return s.sign(tokenClaims{
		RegisteredClaims: registeredClaims(userID, ttl),
		Role:             string(role),
		Remember:         remember,
	})
}

// GenerateVerificationToken signs a short-lived single-purpose credential
// used for email verification and password reset.
func (s *TokenService) GenerateVerificationToken(userID string) (string, error) {
	return s.sign(tokenClaims{RegisteredClaims: registeredClaims(userID, s.verificationTTL)})
}

func (s *TokenService) DecodeToken(tokenString string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &ports.TokenClaims{
		UserID:   claims.Subject,
		Role:     domain.Role(claims.Role),
		Remember: claims.Remember,
	}, nil
}

func (s *TokenService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *TokenService) sign(claims tokenClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func registeredClaims(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
