package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	secret := "test-secret"
	tokens := NewJWT(secret)

	token, err := tokens.Issue("user-123", []string{"admin", "attendee"}, time.Hour)
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
	assert.Equal(t, []string{"admin", "attendee"}, claims.Roles)

	p, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", p.UserID)
	assert.True(t, p.HasRole("admin"))
}

func TestJWT_VerifyRejects(t *testing.T) {
	tokens := NewJWT("test-secret")
	valid, err := tokens.Issue("user-1", nil, time.Hour)
	require.NoError(t, err)

	expired := NewJWT("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("user-1", nil, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		with  *JWT
	}{
		{"wrong secret", valid, NewJWT("other-secret")},
		{"expired", old, tokens},
		{"unsigned", none, tokens},
		{"garbage", "not-a-token", tokens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.with.Verify(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
