package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(RegisterInput{
		Username: "alice",
		Password: "hunter22",
		Gender:   models.GenderFemale,
		IMEI:     "356938035643809",
		BTName:   "alice-phone",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	loggedIn, token, err := env.auth.Login("alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	username, err := env.auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(RegisterInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = env.auth.Register(RegisterInput{Username: "alice", Password: "other-pass"})
	assert.Error(t, err)
}

func TestRegisterDefaultsGender(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(RegisterInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnspecified, user.Gender)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(RegisterInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = env.auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	env := newTestEnv(t)
	other := NewAuthService(env.users, "different-secret")

	_, err := env.auth.Register(RegisterInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	_, token, err := env.auth.Login("alice", "hunter22")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}
