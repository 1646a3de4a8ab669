package authutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
)

func TestToken(t *testing.T) {
	t.Run(`access token carries user and role`, func(t *testing.T) {
		token, err := getToken("secret", 42, "Jeanne Martin", models.ManagerRole, time.Minute)
		require.Nil(t, err)

		claims, err := parseToken("secret", token)
		require.Nil(t, err)
		userID, err := GetUserIDFromClaims(claims)
		require.Nil(t, err)
		require.Equal(t, uint(42), userID)
		require.Equal(t, string(models.ManagerRole), claims["role"])
	})
	t.Run(`wrong secret is rejected`, func(t *testing.T) {
		token, err := getToken("secret", 1, "x", models.RHRole, time.Minute)
		require.Nil(t, err)
		_, err = parseToken("other", token)
		require.NotNil(t, err)
	})
	t.Run(`expired token is rejected`, func(t *testing.T) {
		token, err := getToken("secret", 1, "x", models.RHRole, -time.Minute)
		require.Nil(t, err)
		_, err = parseToken("secret", token)
		require.NotNil(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.Nil(t, err)
	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "wrong"))
}
