package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- fakes ---

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	all     []domain.User
	getErr  error

	created   []*domain.User
	createErr error

	updated   *domain.User
	updateErr error

	passwordUpdates map[string]string
	passwordOK      bool
	passwordErr     error

	deleted   bool
	deleteErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:         map[string]*domain.User{},
		byID:            map[string]*domain.User{},
		passwordUpdates: map[string]string{},
		passwordOK:      true,
	}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	return f.all, f.getErr
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ string, _ domain.UserUpdate) (*domain.User, error) {
	return f.updated, f.updateErr
}

func (f *fakeUserRepo) UpdatePasswordByEmail(_ context.Context, email, hashedPassword string) (bool, error) {
	if f.passwordErr != nil {
		return false, f.passwordErr
	}
	if f.passwordOK {
		f.passwordUpdates[email] = hashedPassword
	}
	return f.passwordOK, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ string) (bool, error) {
	return f.deleted, f.deleteErr
}

type fakeBlacklistRepo struct {
	saved       []*domain.BlacklistedToken
	saveErr     error
	blacklisted map[string]bool
	checkErr    error
}

func (f *fakeBlacklistRepo) Save(_ context.Context, token *domain.BlacklistedToken) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, token)
	return nil
}

func (f *fakeBlacklistRepo) IsBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklisted[token], f.checkErr
}

type fakeMailer struct {
	verificationTo     []string
	verificationTokens []string
	resetTo            []string
	resetTokens        []string
	err                error
}

func (f *fakeMailer) SendVerificationEmail(_ context.Context, email, token string) error {
	if f.err != nil {
		return f.err
	}
	f.verificationTo = append(f.verificationTo, email)
	f.verificationTokens = append(f.verificationTokens, token)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, email, token string) error {
	if f.err != nil {
		return f.err
	}
	f.resetTo = append(f.resetTo, email)
	f.resetTokens = append(f.resetTokens, token)
	return nil
}

// tokenServiceStub delegates to a real TokenService unless a forced error is
// set, to exercise the failure branches.
type tokenServiceStub struct {
	*TokenService
	authErr         error
	verificationErr error
	hashErr         error
}

func (s *tokenServiceStub) GenerateAuthToken(role domain.Role, userID string, remember bool) (string, error) {
	if s.authErr != nil {
		return "", s.authErr
	}
	return s.TokenService.GenerateAuthToken(role, userID, remember)
}

func (s *tokenServiceStub) GenerateVerificationToken(userID string) (string, error) {
	if s.verificationErr != nil {
		return "", s.verificationErr
	}
	return s.TokenService.GenerateVerificationToken(userID)
}

func (s *tokenServiceStub) HashPassword(password string) (string, error) {
	if s.hashErr != nil {
		return "", s.hashErr
	}
	return s.TokenService.HashPassword(password)
}

type authFixture struct {
	users     *fakeUserRepo
	blacklist *fakeBlacklistRepo
	tokens    *tokenServiceStub
	mailer    *fakeMailer
	svc       *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     newFakeUserRepo(),
		blacklist: &fakeBlacklistRepo{blacklisted: map[string]bool{}},
		tokens:    &tokenServiceStub{TokenService: newTestTokenService()},
		mailer:    &fakeMailer{},
	}
	f.svc = NewAuthService(f.users, f.blacklist, f.tokens, f.mailer, testLogger())
	return f
}

func (f *authFixture) addUser(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := f.tokens.HashPassword(password)
	require.NoError(t, err)
	user := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	f.users.byEmail[email] = user
	f.users.byID[user.ID.String()] = user
	return user
}

// --- SignUp ---

func TestSignUpSuccess(t *testing.T) {
	f := newAuthFixture()

	message, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "pa55word",
		Role:      domain.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", message)

	require.Len(t, f.users.created, 1)
	created := f.users.created[0]

	sum := sha256.Sum256([]byte("ada@x.com"))
	wantUserName := strings.ToLower("Ada" + hex.EncodeToString(sum[:])[:8])
	assert.Equal(t, wantUserName, created.UserName)

	assert.NotEqual(t, "pa55word", created.Password)
	assert.True(t, created.ComparePassword("pa55word"))

	require.Len(t, f.mailer.verificationTokens, 1)
	assert.Equal(t, []string{"ada@x.com"}, f.mailer.verificationTo)
	claims, err := f.tokens.DecodeToken(f.mailer.verificationTokens[0])
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.UserID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ada@x.com", "whatever", domain.RoleUser)

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada", Email: "ada@x.com", Password: "pw", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Empty(t, f.users.created)
}

func TestSignUpRaceLostToUniqueIndex(t *testing.T) {
	// The pre-check passed but the store's unique index rejected the insert.
	f := newAuthFixture()
	f.users.createErr = domain.ErrDuplicateEmail

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada", Email: "ada@x.com", Password: "pw", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSignUpCreationFailure(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = errors.New("connection reset")

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada", Email: "ada@x.com", Password: "pw", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrCreationFailed)
}

func TestSignUpTokenGenerationFailure(t *testing.T) {
	f := newAuthFixture()
	f.tokens.verificationErr = errors.New("signing failed")

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada", Email: "ada@x.com", Password: "pw", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrTokenGenerationFailed)
}

func TestSignUpEmailDeliveryFailureLeavesUserInPlace(t *testing.T) {
	f := newAuthFixture()
	f.mailer.err = errors.New("sendgrid down")

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada", Email: "ada@x.com", Password: "pw", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrEmailDeliveryFailed)
	// No rollback: the created user stays.
	assert.Len(t, f.users.created, 1)
}

// --- SignIn ---

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ada@x.com", "correct", domain.RoleUser)

	_, unknownErr := f.svc.SignIn(context.Background(), "nobody@x.com", "correct", false)
	_, wrongErr := f.svc.SignIn(context.Background(), "ada@x.com", "incorrect", false)

	assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestSignInTokenRoundTrip(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "ada@x.com", "pa55word", domain.RoleAdmin)

	for _, remember := range []bool{false, true} {
		result, err := f.svc.SignIn(context.Background(), "ada@x.com", "pa55word", remember)
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.ID)
		assert.Equal(t, domain.RoleAdmin, result.Role)

		claims, err := f.tokens.DecodeToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		assert.Equal(t, remember, claims.Remember)
	}
}

func TestSignInTokenGenerationFailure(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ada@x.com", "pa55word", domain.RoleUser)
	f.tokens.authErr = errors.New("signing failed")

	_, err := f.svc.SignIn(context.Background(), "ada@x.com", "pa55word", false)
	assert.ErrorIs(t, err, domain.ErrTokenGenerationFailed)
}

// --- SignOut ---

func TestSignOutBlacklistsToken(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	token, err := f.tokens.GenerateAuthToken(domain.RoleUser, userID.String(), false)
	require.NoError(t, err)

	before := time.Now()
	message, err := f.svc.SignOut(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Sign-out successful. The token has been invalidated.", message)

	require.Len(t, f.blacklist.saved, 1)
	entry := f.blacklist.saved[0]
	assert.Equal(t, token, entry.Token)
	assert.Equal(t, userID, entry.UserID)
	assert.WithinDuration(t, before.Add(time.Hour), entry.ExpiresAt, time.Minute)
}

func TestSignOutInvalidToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.SignOut(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
	assert.Empty(t, f.blacklist.saved)
}

func TestSignOutBlacklistFailure(t *testing.T) {
	f := newAuthFixture()
	f.blacklist.saveErr = errors.New("insert failed")
	token, err := f.tokens.GenerateAuthToken(domain.RoleUser, uuid.NewString(), false)
	require.NoError(t, err)

	_, err = f.svc.SignOut(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrBlacklistFailed)
}

// --- ForgotPassword ---

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.ForgotPassword(context.Background(), "nobody@x.com", "newpw")
	assert.ErrorIs(t, err, domain.ErrUnknownEmail)
}

func TestForgotPasswordStoresHashedPassword(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "ada@x.com", "oldpw", domain.RoleUser)

	message, err := f.svc.ForgotPassword(context.Background(), "ada@x.com", "newpw")
	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully", message)

	require.Len(t, f.mailer.resetTokens, 1)
	claims, err := f.tokens.DecodeToken(f.mailer.resetTokens[0])
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)

	// The stored value is a hash of the new password, never the plain text.
	stored, ok := f.users.passwordUpdates["ada@x.com"]
	require.True(t, ok)
	assert.NotEqual(t, "newpw", stored)
	assert.True(t, (&domain.User{Password: stored}).ComparePassword("newpw"))
}

func TestForgotPasswordEmailFailureSkipsUpdate(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ada@x.com", "oldpw", domain.RoleUser)
	f.mailer.err = errors.New("sendgrid down")

	_, err := f.svc.ForgotPassword(context.Background(), "ada@x.com", "newpw")
	assert.ErrorIs(t, err, domain.ErrEmailDeliveryFailed)
	assert.Empty(t, f.users.passwordUpdates)
}

func TestForgotPasswordUpdateFailure(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ada@x.com", "oldpw", domain.RoleUser)
	f.users.passwordOK = false

	_, err := f.svc.ForgotPassword(context.Background(), "ada@x.com", "newpw")
	assert.ErrorIs(t, err, domain.ErrPasswordUpdateFailed)
}
