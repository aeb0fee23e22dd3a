package auth

import (
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Issue(t *testing.T) {
	secret := "test-secret"
	expiry := 24 * time.Hour
	issuer := NewJWT(secret)

	token, err := issuer.Issue("user-123", "admin", domain.RoleAdmin, expiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWT_Verify(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("user-1", "user", domain.RoleUser, time.Hour)
	require.NoError(t, err)
	userID, role, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, domain.RoleUser, role)

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := NewJWT("other").Verify(token)
		assert.Error(t, err)
	})
	t.Run("expired", func(t *testing.T) {
		expired, err := j.Issue("user-1", "user", domain.RoleUser, -time.Minute)
		require.NoError(t, err)
		_, _, err = j.Verify(expired)
		assert.Error(t, err)
	})
	t.Run("garbage", func(t *testing.T) {
		_, _, err := j.Verify("not.a.token")
		assert.Error(t, err)
	})
	t.Run("unknown role", func(t *testing.T) {
		forged, err := j.Issue("user-1", "user", domain.Role("ROOT"), time.Hour)
		require.NoError(t, err)
		_, _, err = j.Verify(forged)
		assert.ErrorIs(t, err, errInvalidToken)
	})
	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Role: domain.RoleAdmin,
		})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, _, err = j.Verify(s)
		assert.Error(t, err)
	})
}
