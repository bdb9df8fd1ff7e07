package litcrypt

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Session holds the key shared by every transformation site of one build pass.
// The key is resolved lazily, exactly once, and the result (or the resolution error) is shared by all callers.
// A Session is safe for concurrent use.
type Session struct {
	lookup      LookupFunc
	fallback    []byte
	hasFallback bool
	required    bool
	fixed       []byte
	hasFixed    bool

	once   sync.Once
	mux    sync.RWMutex
	key    []byte
	obfKey []byte
	err    error
	closed bool
}

// SessionOpt operates on a Session in a standard and predictable way, and is used in NewSession.
// If any SessionOpt returns an error, then NewSession returns it.
type SessionOpt = func(s *Session) error

// WithEnv sets the environment used to resolve both the key override and environment literals.
// The default is os.LookupEnv.
func WithEnv(lookup LookupFunc) SessionOpt {
	return func(s *Session) error {
		if lookup == nil {
			return errors.New("nil environment lookup")
		}
		s.lookup = lookup
		return nil
	}
}

// FallbackKey sets a key to use if LITCRYPT_ENCRYPT_KEY is not set.
// The environment still takes precedence, so a build can override a key chosen in source.
func FallbackKey(key string) SessionOpt {
	return func(s *Session) error {
		s.fallback = []byte(key)
		s.hasFallback = true
		return nil
	}
}

// RequireEnvKey makes key resolution fail with ErrSessionKeyUnset when LITCRYPT_ENCRYPT_KEY is not set, rather than generating a random key.
// A FallbackKey still satisfies the requirement.
func RequireEnvKey() SessionOpt {
	return func(s *Session) error {
		s.required = true
		return nil
	}
}

// WithKey fixes the session key, skipping resolution entirely.
func WithKey(key []byte) SessionOpt {
	return func(s *Session) error {
		s.fixed = bytes.Clone(key)
		s.hasFixed = true
		return nil
	}
}

// NewSession creates a new Session using the options provided as zero or more SessionOpt.
func NewSession(opts ...SessionOpt) (*Session, error) {
	s := &Session{
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) resolve() {
	s.once.Do(func() {
		var (
			key []byte
			err error
		)
		switch {
		case s.hasFixed:
			key = s.fixed
		case s.hasFallback:
			key = s.fallback
			if val, ok := s.lookup(KeyEnvVar); ok {
				key = []byte(val)
			}
		case s.required:
			key, err = requireSessionKey(s.lookup)
		default:
			key, err = resolveSessionKey(s.lookup)
		}
		if err != nil {
			s.err = fmt.Errorf("failed to resolve session key: %w", err)
			return
		}
		s.key = key
		s.obfKey = ObfuscateKey(key)
	})
}

// withKey calls fn with the obfuscated key while holding the read lock.
// fn must not retain the slice.
func (s *Session) withKey(fn func(obfKey []byte)) error {
	s.resolve()
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.err != nil {
		return s.err
	}
	fn(s.obfKey)
	return nil
}

// Key returns a copy of the resolved session key.
func (s *Session) Key() ([]byte, error) {
	var key []byte
	err := s.withKey(func([]byte) {
		key = bytes.Clone(s.key)
	})
	return key, err
}

// ObfuscatedKey returns a copy of the obfuscated session key.
func (s *Session) ObfuscatedKey() ([]byte, error) {
	var obfKey []byte
	err := s.withKey(func(k []byte) {
		obfKey = bytes.Clone(k)
	})
	return obfKey, err
}

// Fingerprint returns a short digest of the obfuscated key.
// Two generated outputs with different fingerprints were screened with different keys.
func (s *Session) Fingerprint() (string, error) {
	var fp string
	err := s.withKey(func(k []byte) {
		fp = fingerprint(k)
	})
	return fp, err
}

// Close zeroes the key material held by the Session.
// Any further use of the Session returns ErrSessionClosed.
func (s *Session) Close() error {
	// Keeps a later call from resolving a key after Close.
	s.once.Do(func() {})
	s.mux.Lock()
	defer s.mux.Unlock()
	clear(s.key)
	clear(s.obfKey)
	clear(s.fixed)
	clear(s.fallback)
	s.key, s.obfKey = nil, nil
	s.closed = true
	return nil
}

func fingerprint(obfKey []byte) string {
	sum := blake2b.Sum256(obfKey)
	return hex.EncodeToString(sum[:8])
}

// Prepare returns the per-session data an emitter declares once, the obfuscated key and its fingerprint.
func (s *Session) Prepare() (Prelude, error) {
	var p Prelude
	err := s.withKey(func(k []byte) {
		p = Prelude{
			ObfuscatedKey: bytes.Clone(k),
			Fingerprint:   fingerprint(k),
		}
	})
	return p, err
}

// Encode screens a parsed literal with the session key.
func (s *Session) Encode(lit Literal) (Call, error) {
	if err := lit.validate(); err != nil {
		return Call{}, err
	}
	return s.EncodeString(lit.Value)
}

// EncodeString screens already resolved text with the session key.
func (s *Session) EncodeString(plaintext string) (Call, error) {
	var (
		call   Call
		encErr error
	)
	err := s.withKey(func(k []byte) {
		call, encErr = EncodeLiteral(plaintext, bytes.Clone(k))
	})
	if err != nil {
		return Call{}, err
	}
	return call, encErr
}

// EncodeEnv resolves varName in the session's environment and screens its value.
// If the variable is not set, EnvPlaceholder is screened instead.
func (s *Session) EncodeEnv(varName string) (Call, error) {
	call, err := s.EncodeString(lookupEnvLiteral(s.lookup, varName))
	if err != nil {
		return Call{}, fmt.Errorf("environment variable %s: %w", varName, err)
	}
	return call, nil
}
