package auth

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.Security{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: 240 * time.Hour,
		Issuer:             "storefront",
	})
}

func TestIssueAndParse(t *testing.T) {
	manager := newTestManager()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", FullName: "Jane Doe"}

	pair, err := manager.IssuePair(user)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("Access token carries the user", func(t *testing.T) {
		claims, err := manager.ParseAccess(pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.FullName, claims.FullName)
	})

	t.Run("Refresh token verifies with the refresh secret only", func(t *testing.T) {
		_, err := manager.ParseRefresh(pair.RefreshToken)
		require.NoError(t, err)

		_, err = manager.ParseAccess(pair.RefreshToken)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

		_, err = manager.ParseRefresh(pair.AccessToken)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Pairs issued together are distinct", func(t *testing.T) {
		other, err := manager.IssuePair(user)

		require.NoError(t, err)
		assert.NotEqual(t, pair.AccessToken, other.AccessToken)
	})
}

func TestParseRejects(t *testing.T) {
	manager := newTestManager()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}

	t.Run("Expired", func(t *testing.T) {
		manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		pair, err := manager.IssuePair(user)
		require.NoError(t, err)

		manager.now = time.Now
		_, err = manager.ParseAccess(pair.AccessToken)

		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Wrong signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{
			UserID: user.ID,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "storefront",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = manager.ParseAccess(signed)

		require.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := manager.ParseAccess("not-a-token")

		require.ErrorIs(t, err, jwt.ErrTokenMalformed)
	})
}
