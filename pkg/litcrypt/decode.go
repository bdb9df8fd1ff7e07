package litcrypt

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/saylorsolutions/litcrypt/pkg/xor"
)

// ErrTextReconstruction means decoded bytes are not valid UTF-8.
// With matching keys this can't happen, so it points at a key mismatch between build time and run time.
var ErrTextReconstruction = errors.New("decoded literal is not valid UTF-8, the key likely differs from the one it was screened with")

// Decode reverses EncodeLiteral, the same way generated code does at run time.
func Decode(ciphertext, obfuscatedKey []byte) (string, error) {
	plain := xor.Decode(ciphertext, obfuscatedKey)
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: %d bytes with a %d byte key", ErrTextReconstruction, len(ciphertext), len(obfuscatedKey))
	}
	return string(plain), nil
}

// MustDecode is like Decode, but panics on failure.
func MustDecode(ciphertext, obfuscatedKey []byte) string {
	s, err := Decode(ciphertext, obfuscatedKey)
	if err != nil {
		panic(err)
	}
	return s
}
