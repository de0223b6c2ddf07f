// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/sec"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// # Test Fixtures

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
	failing bool
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if r.failing {
		return nil, errors.New("storage down")
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if r.failing {
		return nil, errors.New("storage down")
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	copied := *user
	r.byID[user.ID] = &copied
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// memoryResetTokenRepository is an in-memory ResetTokenRepository.
type memoryResetTokenRepository struct {
	tokens map[string]string
}

func newMemoryResetTokenRepository() *memoryResetTokenRepository {
	return &memoryResetTokenRepository{tokens: map[string]string{}}
}

func (r *memoryResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *memoryResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (r *memoryResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

// newTestService wires a Service against in-memory fixtures and a real
// token provider with the production claim layout.
func newTestService(t *testing.T) (*auth.Service, *memoryUserRepository, *memoryResetTokenRepository) {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret-key", "storeratings.test", auth.AccessTokenTTL)
	require.NoError(t, err)

	users := newMemoryUserRepository()
	resets := newMemoryResetTokenRepository()
	service := auth.NewService(users, resets, tokens, sec.NewHasher(4))
	return service, users, resets
}

// newRequest builds a bare request for identity-resolution calls.
func newRequest() (*http.Request, error) {
	return http.NewRequest(http.MethodGet, "/", nil)
}

func signupFixture(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Signup(context.Background(), auth.SignupInput{
		Name:     "Nguyen Minh Tri Tester",
		Email:    "tester@example.com",
		Password: "Str0ngPass!",
		Address:  "12 Nguyen Hue Blvd, District 1",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestSignup_CreatesNormalUser verifies that self-registration always yields
the normal role regardless of any caller intent, and never exposes the hash.
*/
func TestSignup_CreatesNormalUser(t *testing.T) {
	service, users, _ := newTestService(t)

	user := signupFixture(t, service)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleNormal, user.Role)

	// The stored hash must never equal the plain password.
	stored := users.byEmail["tester@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Str0ngPass!", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

/*
TestSignup_DuplicateEmail verifies that registering an existing email
returns a Conflict and leaves the original account untouched.
*/
func TestSignup_DuplicateEmail(t *testing.T) {
	service, users, _ := newTestService(t)
	original := signupFixture(t, service)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Name:     "Another Person Entirely OK",
		Email:    "tester@example.com",
		Password: "Other1Pass!",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
	assert.Equal(t, original.ID, users.byEmail["tester@example.com"].ID)
}

// # Login

/*
TestLogin_Success verifies that valid credentials yield a token whose
claims carry the account's id and role.
*/
func TestLogin_Success(t *testing.T) {
	service, _, _ := newTestService(t)
	user := signupFixture(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "tester@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.User.ID)

	tokens, err := sec.NewTokenService("test-secret-key", "storeratings.test", auth.AccessTokenTTL)
	require.NoError(t, err)
	claims, err := tokens.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, sec.RoleNormal, claims.Role)
}

/*
TestLogin_WrongPassword verifies the generic Unauthorized response for a
bad password.
*/
func TestLogin_WrongPassword(t *testing.T) {
	service, _, _ := newTestService(t)
	signupFixture(t, service)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "tester@example.com",
		Password: "WrongPass1!",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

/*
TestLogin_UnknownEmail verifies the response for an unknown email is
indistinguishable from a wrong password.
*/
func TestLogin_UnknownEmail(t *testing.T) {
	service, _, _ := newTestService(t)
	signupFixture(t, service)

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Email:    "tester@example.com",
		Password: "WrongPass1!",
	})
	_, unknownEmail := service.Login(context.Background(), auth.LoginInput{
		Email:    "ghost@example.com",
		Password: "Str0ngPass!",
	})

	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

// # Identity Resolution

/*
TestLoadIdentity_DeletedAccount verifies that a vanished account resolves
to Unauthorized, so bearer tokens die with the row.
*/
func TestLoadIdentity_DeletedAccount(t *testing.T) {
	service, _, _ := newTestService(t)

	request, err := newRequest()
	require.NoError(t, err)

	_, err = service.LoadIdentity(request, "no-such-user")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
	assert.Equal(t, "Invalid user", appErr.Message)
}

/*
TestLoadIdentity_ReflectsStoredRole verifies that the identity carries
whatever role is currently persisted, not what any token claimed.
*/
func TestLoadIdentity_ReflectsStoredRole(t *testing.T) {
	service, users, _ := newTestService(t)
	user := signupFixture(t, service)

	// Demote out-of-band, as an admin edit would.
	users.byID[user.ID].Role = sec.RoleStoreOwner

	request, err := newRequest()
	require.NoError(t, err)

	identity, err := service.LoadIdentity(request, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleStoreOwner, identity.Role)
	assert.Equal(t, user.Email, identity.Email)
}

// # Password Lifecycle

/*
TestChangePassword_WrongCurrent verifies that a wrong current password is
rejected and the stored hash is not mutated.
*/
func TestChangePassword_WrongCurrent(t *testing.T) {
	service, users, _ := newTestService(t)
	user := signupFixture(t, service)
	originalHash := users.byID[user.ID].PasswordHash

	err := service.ChangePassword(context.Background(), user.ID, "WrongPass1!", "NewStrong1!")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
	assert.Equal(t, originalHash, users.byID[user.ID].PasswordHash)
}

/*
TestChangePassword_Success verifies the full rotation: old credentials stop
working and the new ones authenticate.
*/
func TestChangePassword_Success(t *testing.T) {
	service, _, _ := newTestService(t)
	user := signupFixture(t, service)

	err := service.ChangePassword(context.Background(), user.ID, "Str0ngPass!", "NewStrong1!")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "tester@example.com", Password: "Str0ngPass!",
	})
	assert.Error(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "tester@example.com", Password: "NewStrong1!",
	})
	assert.NoError(t, err)
}

/*
TestPasswordReset_Flow verifies the forgot/reset round trip, including
single-use token semantics.
*/
func TestPasswordReset_Flow(t *testing.T) {
	service, _, resets := newTestService(t)
	signupFixture(t, service)

	token, err := service.RequestPasswordReset(context.Background(), "tester@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "FreshPass1!"))

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "tester@example.com", Password: "FreshPass1!",
	})
	assert.NoError(t, err)

	// Token is consumed on success.
	assert.Empty(t, resets.tokens)
	assert.Error(t, service.ResetPassword(context.Background(), token, "AnotherP1!"))
}

/*
TestPasswordReset_TokenStoredAsDigest verifies the volatile store never
sees the plaintext token: it is keyed by the SHA-256 digest, yet the
plaintext handed to the user still completes the reset.
*/
func TestPasswordReset_TokenStoredAsDigest(t *testing.T) {
	service, _, resets := newTestService(t)
	signupFixture(t, service)

	token, err := service.RequestPasswordReset(context.Background(), "tester@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, rawStored := resets.tokens[token]
	assert.False(t, rawStored)
	_, digestStored := resets.tokens[sec.HashToken(token)]
	assert.True(t, digestStored)

	assert.NoError(t, service.ResetPassword(context.Background(), token, "FreshPass1!"))
}

/*
TestPasswordReset_UnknownEmail verifies that recovery for an unknown email
succeeds silently without minting a token.
*/
func TestPasswordReset_UnknownEmail(t *testing.T) {
	service, _, resets := newTestService(t)

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, resets.tokens)
}
