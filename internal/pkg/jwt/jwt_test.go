package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("42", identity.RoleStudent)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	id := IdentityFromClaims(claims)
	assert.Equal(t, "42", id.JobseekerID)
	assert.Equal(t, identity.RoleStudent, id.Role)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken("42", identity.RoleJobseeker)
	assert.Error(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	id := IdentityFromClaims(map[string]interface{}{"jobseeker_id": float64(7), "role": "admin"})
	assert.Equal(t, "7", id.JobseekerID)
	assert.Equal(t, identity.RoleJobseeker, id.Role)

	id = IdentityFromClaims(map[string]interface{}{})
	assert.Empty(t, id.JobseekerID)
}
