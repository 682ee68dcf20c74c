package service

import (
	"testing"
	"time"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authService(e *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = 3600000000000
	return NewAuthService(e.Users, e.Profiles, cfg)
}

func TestRegisterCreatesProfile(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	user := &model.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
	require.NoError(t, svc.Register(user))

	profile, err := e.Profiles.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.FirstLogin)
	assert.Equal(t, model.ExperienceBeginner, profile.ExperienceLevel)

	// The stored password is a hash, never the plaintext.
	stored, err := e.Users.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	require.NoError(t, svc.Register(&model.User{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	}))

	err := svc.Register(&model.User{
		Username: "alice2", Email: "alice@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	err = svc.Register(&model.User{
		Username: "alice", Email: "other@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestLoginReportsAndClearsFirstLogin(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	require.NoError(t, svc.Register(&model.User{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	}))

	result, err := svc.Login("alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.FirstLogin)

	result, err = svc.Login("alice", "password123")
	require.NoError(t, err)
	assert.False(t, result.FirstLogin)
}

func TestLoginWrongCredentials(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	require.NoError(t, svc.Register(&model.User{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	}))

	_, err := svc.Login("alice", "wrong-password")
	assert.Error(t, err)

	_, err = svc.Login("nobody", "password123")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	require.NoError(t, svc.Register(user))

	err := svc.ChangePassword(user.ID, "wrong-old", "newpassword1")
	assert.ErrorIs(t, err, util.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))

	_, err = svc.Login("alice", "password123")
	assert.Error(t, err)
	_, err = svc.Login("alice", "newpassword1")
	assert.NoError(t, err)
}

func TestIssuedTokenCarriesClaims(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	require.NoError(t, svc.Register(user))

	result, err := svc.Login("alice", "password123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(result.Token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsStaff)
}

func TestTokenSigningMethodPinned(t *testing.T) {
	e := newTestEnv(t)
	svc := authService(e)

	forged := jwt.NewWithClaims(jwt.SigningMethodNone, &util.Claims{
		UserID:   1,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := forged.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// The token header must not be able to pick its own algorithm.
	_, err = util.ParseJWT(token, svc.Cfg.JWT.Secret)
	assert.Error(t, err)
}
