package litcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_InvalidText(t *testing.T) {
	key := []byte{0x80}
	_, err := Decode([]byte{0x00, 0x00}, key)
	assert.ErrorIs(t, err, ErrTextReconstruction)

	assert.Panics(t, func() {
		MustDecode([]byte{0x00}, key)
	})
}

func TestMustDecode(t *testing.T) {
	obfKey := PrepareSession([]byte(spell)).ObfuscatedKey
	call, err := EncodeLiteral("Kucing Garong", obfKey)
	require.NoError(t, err)
	assert.Equal(t, "Kucing Garong", MustDecode(call.Ciphertext, obfKey))
}
