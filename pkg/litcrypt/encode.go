package litcrypt

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/saylorsolutions/litcrypt/pkg/xor"
)

// EnvPlaceholder is screened in place of an environment literal whose variable is not set.
const EnvPlaceholder = "unknown"

// ErrInvalidPlaintext means text to be screened is not valid UTF-8, so it could never be decoded back into a string.
var ErrInvalidPlaintext = errors.New("plaintext is not valid UTF-8")

// Prelude is declared once per session by an emitter: the static obfuscated key, alongside the decoder functions.
type Prelude struct {
	ObfuscatedKey []byte
	// Fingerprint identifies ObfuscatedKey without revealing it.
	Fingerprint string
}

// Call describes one transformation site: a call to the runtime decoder with Ciphertext and Key.
// Key is always the session's obfuscated key, the same value declared by the Prelude.
type Call struct {
	Ciphertext []byte
	Key        []byte
}

// Decode does what the runtime decoder would do with this Call.
func (c Call) Decode() (string, error) {
	return Decode(c.Ciphertext, c.Key)
}

// PrepareSession obfuscates a session key.
// This happens once per session, never once per literal.
func PrepareSession(key []byte) Prelude {
	obfKey := ObfuscateKey(key)
	return Prelude{
		ObfuscatedKey: obfKey,
		Fingerprint:   fingerprint(obfKey),
	}
}

// EncodeLiteral screens plaintext with an already obfuscated key.
// plaintext must be valid UTF-8, otherwise ErrInvalidPlaintext is returned.
// The returned Call references obfuscatedKey, it must not be modified afterward.
func EncodeLiteral(plaintext string, obfuscatedKey []byte) (Call, error) {
	if !utf8.ValidString(plaintext) {
		return Call{}, fmt.Errorf("%w: %q", ErrInvalidPlaintext, plaintext)
	}
	return Call{
		Ciphertext: xor.Encode([]byte(plaintext), obfuscatedKey),
		Key:        obfuscatedKey,
	}, nil
}

// EncodeEnvLiteral screens the build time value of the environment variable varName.
// If it's not set, EnvPlaceholder is screened instead.
func EncodeEnvLiteral(varName string, obfuscatedKey []byte) (Call, error) {
	call, err := EncodeLiteral(lookupEnvLiteral(os.LookupEnv, varName), obfuscatedKey)
	if err != nil {
		return Call{}, fmt.Errorf("environment variable %s: %w", varName, err)
	}
	return call, nil
}

func lookupEnvLiteral(lookup LookupFunc, varName string) string {
	if val, ok := lookup(varName); ok {
		return val
	}
	return EnvPlaceholder
}
