package litcrypt

import (
	"errors"
	"fmt"
	"os"

	"github.com/saylorsolutions/litcrypt/pkg/xor"
)

const (
	// KeyEnvVar names the environment variable that overrides the session key.
	KeyEnvVar = "LITCRYPT_ENCRYPT_KEY"
	// SessionKeyLen is the length of a randomly generated session key.
	SessionKeyLen = 64

	obfuscationConstant = "l33t"
)

var (
	ErrSessionKeyUnset = fmt.Errorf("session key is required but %s is not set, set it to a stable key for this build", KeyEnvVar)
	ErrSessionClosed   = errors.New("session is closed")
)

// LookupFunc resolves an environment variable in the same way as os.LookupEnv.
type LookupFunc = func(key string) (string, bool)

// ResolveSessionKey returns the exact content of LITCRYPT_ENCRYPT_KEY if it's set, even if empty.
// Otherwise a new random key of SessionKeyLen bytes is generated.
//
// Each call without the override yields a different key, so the result must be resolved once and shared for a build session.
// Session does this.
func ResolveSessionKey() ([]byte, error) {
	return resolveSessionKey(os.LookupEnv)
}

func resolveSessionKey(lookup LookupFunc) ([]byte, error) {
	if val, ok := lookup(KeyEnvVar); ok {
		return []byte(val), nil
	}
	return xor.GenKey(SessionKeyLen)
}

// RequireSessionKey is like ResolveSessionKey, but returns ErrSessionKeyUnset instead of generating a key.
func RequireSessionKey() ([]byte, error) {
	return requireSessionKey(os.LookupEnv)
}

func requireSessionKey(lookup LookupFunc) ([]byte, error) {
	if val, ok := lookup(KeyEnvVar); ok {
		return []byte(val), nil
	}
	return nil, ErrSessionKeyUnset
}

// ObfuscateKey screens a session key with the fixed obfuscation constant.
// The result is what gets embedded in a binary, and what literals are screened with.
func ObfuscateKey(key []byte) []byte {
	return xor.Encode(key, []byte(obfuscationConstant))
}
