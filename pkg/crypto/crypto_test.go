package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomStringLengthAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := GenerateRandomString(16)
		require.NoError(t, err)
		assert.Len(t, s, 22) // 16 bytes base64url without padding
		assert.False(t, seen[s], "random strings must not repeat")
		seen[s] = true
	}
}

func TestCodeShapes(t *testing.T) {
	invite, err := GenerateInviteCode()
	require.NoError(t, err)
	assert.Len(t, invite, 22)

	connKey, err := GenerateConnectionKey()
	require.NoError(t, err)
	assert.Len(t, connKey, 16)
}
