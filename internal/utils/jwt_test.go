package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer_directory/internal/utils"
)

func testTokenOptions() utils.TokenOptions {
	return utils.TokenOptions{
		Secret:   "test-secret-key-with-enough-length",
		Issuer:   "freelancer-directory",
		Audience: "freelancer-directory",
		TTL:      30 * time.Minute,
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	opts := testTokenOptions()

	token, expiresAt, err := utils.GenerateJWT(42, "alice", "Admin", opts)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(opts.TTL), expiresAt, 5*time.Second)

	claims, err := utils.ParseJWT(token, opts)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	id, err := claims.FreelancerID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseJWTRejects(t *testing.T) {
	opts := testTokenOptions()

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := utils.GenerateJWT(1, "alice", "Freelancer", opts)
		require.NoError(t, err)

		other := opts
		other.Secret = "another-secret"
		_, err = utils.ParseJWT(token, other)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := opts
		expired.TTL = -time.Minute
		token, _, err := utils.GenerateJWT(1, "alice", "Freelancer", expired)
		require.NoError(t, err)

		_, err = utils.ParseJWT(token, opts)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, _, err := utils.GenerateJWT(1, "alice", "Freelancer", opts)
		require.NoError(t, err)

		other := opts
		other.Audience = "someone-else"
		_, err = utils.ParseJWT(token, other)
		assert.Error(t, err)
	})

	t.Run("other signing method", func(t *testing.T) {
		claims := utils.Claims{
			Name: "alice",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(opts.Secret))
		require.NoError(t, err)

		_, err = utils.ParseJWT(token, opts)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := utils.ParseJWT("not.a.token", opts)
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, _, err := utils.GenerateJWT(1, "alice", "Freelancer", utils.TokenOptions{TTL: time.Minute})
		assert.ErrorIs(t, err, utils.ErrMissingSecret)
	})
}
