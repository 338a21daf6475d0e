package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	token, err := GenerateToken(7)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	require.Error(t, err)
}
