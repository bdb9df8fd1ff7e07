package litcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spellBundle(t *testing.T) *Bundle {
	t.Helper()
	s, err := NewSession(
		WithKey([]byte(spell)),
		WithEnv(envMap(map[string]string{"SECRET_ENV": "Shhhhhh"})),
	)
	require.NoError(t, err)
	greeting, err := ParseLiteral(`"Kucing Garong"`)
	require.NoError(t, err)
	path, err := ParseLiteral("`c:\\windows\\system32`")
	require.NoError(t, err)

	b, err := s.Bundle(
		LiteralEntry("Greeting", greeting),
		LiteralEntry("systemPath", path),
		EnvEntry("Secret", "SECRET_ENV"),
		EnvEntry("Missing", "UNSET_VAR"),
	)
	require.NoError(t, err)
	return b
}

func TestSession_Bundle(t *testing.T) {
	b := spellBundle(t)
	assert.Equal(t, ObfuscateKey([]byte(spell)), b.ObfuscatedKey)
	require.Len(t, b.Sites, 4)

	expected := map[string]string{
		"Greeting":   "Kucing Garong",
		"systemPath": `c:\windows\system32`,
		"Secret":     "Shhhhhh",
		"Missing":    EnvPlaceholder,
	}
	for _, site := range b.Sites {
		assert.Equal(t, b.ObfuscatedKey, site.Key)
		decoded, err := site.Decode()
		assert.NoError(t, err)
		assert.Equal(t, expected[site.Name], decoded)
	}
}

func TestSession_Bundle_Neg(t *testing.T) {
	s, err := NewSession(WithKey([]byte(spell)))
	require.NoError(t, err)
	lit, err := ParseLiteral(`"x"`)
	require.NoError(t, err)

	_, err = s.Bundle(LiteralEntry("not-an-ident", lit))
	assert.ErrorIs(t, err, ErrInvalidSiteName)
	_, err = s.Bundle(LiteralEntry("", lit))
	assert.ErrorIs(t, err, ErrInvalidSiteName)
	_, err = s.Bundle(LiteralEntry("Same", lit), EnvEntry("Same", "HOME"))
	assert.ErrorIs(t, err, ErrInvalidSiteName)
	_, err = s.Bundle(LiteralEntry("Zero", Literal{}))
	assert.ErrorIs(t, err, ErrArgumentKind)
}

func TestEntry_EnvVar(t *testing.T) {
	name, ok := EnvEntry("Home", "HOME").EnvVar()
	assert.True(t, ok)
	assert.Equal(t, "HOME", name)
	_, ok = LiteralEntry("Lit", Literal{}).EnvVar()
	assert.False(t, ok)
}

func TestBundle_Binary(t *testing.T) {
	b := spellBundle(t)
	data, err := b.MarshalBinary()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Kucing Garong")
	assert.NotContains(t, string(data), spell)

	var decoded Bundle
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, b.Prelude, decoded.Prelude)
	require.Len(t, decoded.Sites, len(b.Sites))
	for i, site := range decoded.Sites {
		assert.Equal(t, b.Sites[i].Name, site.Name)
		plain, err := site.Decode()
		assert.NoError(t, err)
		expected, err := b.Sites[i].Decode()
		assert.NoError(t, err)
		assert.Equal(t, expected, plain)
	}
}

func TestBundle_UnmarshalBinary_Neg(t *testing.T) {
	data, err := spellBundle(t).MarshalBinary()
	require.NoError(t, err)

	var b Bundle
	assert.ErrorIs(t, b.UnmarshalBinary(nil), ErrInvalidBundle)
	assert.ErrorIs(t, b.UnmarshalBinary(data[:len(data)-1]), ErrInvalidBundle)
	assert.ErrorIs(t, b.UnmarshalBinary(append(append([]byte{}, data...), 0x0)), ErrInvalidBundle)

	badMagic := append([]byte{}, data...)
	badMagic[0] = 'X'
	assert.ErrorIs(t, b.UnmarshalBinary(badMagic), ErrInvalidBundle)

	badVersion := append([]byte{}, data...)
	badVersion[2] = 99
	assert.ErrorIs(t, b.UnmarshalBinary(badVersion), ErrInvalidBundle)
}
