package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "authgw/pkg/domain-errors"
)

var jwtService = New("test-signing-key", "test-issuer", time.Hour)

func Test_Issue(t *testing.T) {
	token, err := jwtService.Issue("juan.perez")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)
	assert.Equal(t, "Bearer", token.Scheme)

	claims, err := jwtService.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "juan.perez", claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_Issue_BindsExactUsername(t *testing.T) {
	for _, username := range []string{"juan.perez", "MARIA.GONZALEZ", "sofia.lopez"} {
		token, err := jwtService.Issue(username)
		require.NoError(t, err)

		claims, err := jwtService.Validate(token.Value)
		require.NoError(t, err)
		assert.Equal(t, username, claims.Subject, "no substitution, no default identity")
	}
}

func Test_Issue_EmptyIdentityRejected(t *testing.T) {
	_, err := jwtService.Issue("")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
}

func Test_Issue_NoPayloadLeakage(t *testing.T) {
	token, err := jwtService.Issue("juan.perez")
	require.NoError(t, err)
	assert.NotContains(t, token.Value, "Pérez")
	assert.NotContains(t, token.Value, "password")
}

func Test_Validate_InvalidToken(t *testing.T) {
	_, err := jwtService.Validate("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func Test_Validate_ExpiredToken(t *testing.T) {
	expired := New("test-signing-key", "test-issuer", -time.Hour)

	token, err := expired.Issue("juan.perez")
	require.NoError(t, err)

	_, err = jwtService.Validate(token.Value)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func Test_Validate_WrongKey(t *testing.T) {
	other := New("different-key", "test-issuer", time.Hour)

	token, err := other.Issue("juan.perez")
	require.NoError(t, err)

	_, err = jwtService.Validate(token.Value)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}
