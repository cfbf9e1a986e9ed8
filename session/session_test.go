package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func TestFromEnvAuthenticated(t *testing.T) {
	t.Setenv("RECHORD_TOKEN", "opaque-token")
	t.Setenv("RECHORD_CLIENT_ID", "7")

	sess := FromEnv()

	auth, ok := Credentials(sess)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", auth.Token)
	assert.Equal(t, int64(7), auth.ClientID)
}

func TestFromEnvMissingTokenIsAnonymous(t *testing.T) {
	t.Setenv("RECHORD_TOKEN", "")
	t.Setenv("RECHORD_CLIENT_ID", "7")

	_, ok := Credentials(FromEnv())
	assert.False(t, ok)
}

func TestFromEnvBadClientIDIsAnonymous(t *testing.T) {
	t.Setenv("RECHORD_TOKEN", "opaque-token")
	t.Setenv("RECHORD_CLIENT_ID", "not-a-number")

	_, ok := Credentials(FromEnv())
	assert.False(t, ok)
}

func TestFromEnvExpiredJWTIsAnonymous(t *testing.T) {
	t.Setenv("RECHORD_TOKEN", signedToken(t, time.Now().Add(-time.Hour)))
	t.Setenv("RECHORD_CLIENT_ID", "7")

	_, ok := Credentials(FromEnv())
	assert.False(t, ok)
}

func TestFromEnvValidJWTIsAuthenticated(t *testing.T) {
	t.Setenv("RECHORD_TOKEN", signedToken(t, time.Now().Add(time.Hour)))
	t.Setenv("RECHORD_CLIENT_ID", "7")

	_, ok := Credentials(FromEnv())
	assert.True(t, ok)
}

func TestFromSecret(t *testing.T) {
	originalGet := getSecret
	getSecret = func(name string) (string, error) {
		assert.Equal(t, "prod/rechord-session", name)
		return `{"token": "secret-token", "client_id": 9}`, nil
	}
	defer func() { getSecret = originalGet }()

	sess, err := FromSecret("prod/rechord-session")
	assert.NoError(t, err)

	auth, ok := Credentials(sess)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", auth.Token)
	assert.Equal(t, int64(9), auth.ClientID)
}

func TestFromSecretRetrievalError(t *testing.T) {
	originalGet := getSecret
	getSecret = func(name string) (string, error) {
		return "", errors.New("denied")
	}
	defer func() { getSecret = originalGet }()

	_, err := FromSecret("prod/rechord-session")
	assert.Error(t, err)
}

func TestFromSecretEmptyCredentialsIsAnonymous(t *testing.T) {
	originalGet := getSecret
	getSecret = func(name string) (string, error) {
		return `{"token": "", "client_id": 0}`, nil
	}
	defer func() { getSecret = originalGet }()

	sess, err := FromSecret("prod/rechord-session")
	assert.NoError(t, err)
	_, ok := Credentials(sess)
	assert.False(t, ok)
}

func TestTokenExpiredOpaqueTokenPasses(t *testing.T) {
	assert.False(t, tokenExpired("not-a-jwt"))
}

func TestTokenExpiredNoExpClaimPasses(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	assert.False(t, tokenExpired(token))
}
