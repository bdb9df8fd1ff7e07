package xor

import (
	"crypto/rand"
	"fmt"
	"io"
)

// GenKey will generate an XOR key with the given length from a secure random source.
func GenKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("asked to generate a key of length %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read requested bytes: %w", err)
	}
	return buf, nil
}
