package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("s3cret", "64f0c0ffee0000000000beef")
	require.NoError(t, err)

	userID, err := UserIDFromToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c0ffee0000000000beef", userID)

	_, err = UserIDFromToken("other", token)
	assert.Error(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", "u1")
	assert.Error(t, err)
}
