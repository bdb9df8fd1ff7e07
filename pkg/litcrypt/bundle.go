package litcrypt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"go/token"
	"io"

	bin "github.com/saylorsolutions/binmap"
)

const (
	bundleMagicA  uint8 = 'L'
	bundleMagicB  uint8 = 'C'
	bundleVersion uint8 = 1
)

var (
	ErrInvalidBundle   = errors.New("invalid literal bundle")
	ErrInvalidSiteName = errors.New("invalid site name")
)

// Entry is the input for one transformation site: a name, and either a literal or an environment variable.
type Entry struct {
	Name    string
	literal Literal
	envVar  string
	isEnv   bool
}

// LiteralEntry creates an Entry screening a parsed literal.
func LiteralEntry(name string, lit Literal) Entry {
	return Entry{Name: name, literal: lit}
}

// EnvEntry creates an Entry screening the build time value of an environment variable.
func EnvEntry(name, varName string) Entry {
	return Entry{Name: name, envVar: varName, isEnv: true}
}

// EnvVar returns the environment variable name and true for an entry created with EnvEntry.
func (e Entry) EnvVar() (string, bool) {
	return e.envVar, e.isEnv
}

// Site is one named transformation site in a Bundle.
type Site struct {
	Name string
	Call
}

// Bundle is everything an emitter needs to produce output for a session: the Prelude and every Site.
type Bundle struct {
	Prelude
	Sites []Site
}

// Bundle screens every entry with the session key.
// Site names must be unique Go identifiers.
func (s *Session) Bundle(entries ...Entry) (*Bundle, error) {
	seen := map[string]bool{}
	for _, e := range entries {
		if !token.IsIdentifier(e.Name) {
			return nil, fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidSiteName, e.Name)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: %q is used more than once", ErrInvalidSiteName, e.Name)
		}
		seen[e.Name] = true
	}

	prelude, err := s.Prepare()
	if err != nil {
		return nil, err
	}
	b := &Bundle{
		Prelude: prelude,
		Sites:   make([]Site, 0, len(entries)),
	}
	for _, e := range entries {
		var call Call
		if e.isEnv {
			call, err = s.EncodeEnv(e.envVar)
		} else {
			call, err = s.Encode(e.literal)
		}
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", e.Name, err)
		}
		// Every site shares the declared key.
		call.Key = b.ObfuscatedKey
		b.Sites = append(b.Sites, Site{Name: e.Name, Call: call})
	}
	return b, nil
}

type bundleHeader struct {
	magicA    uint8
	magicB    uint8
	version   uint8
	keyLen    uint64
	siteCount uint64
}

func (h *bundleHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Byte(&h.magicA),
		bin.Byte(&h.magicB),
		bin.Byte(&h.version),
		bin.Int(&h.keyLen),
		bin.Int(&h.siteCount),
	)
}

type siteHeader struct {
	nameLen uint64
	dataLen uint64
}

func (h *siteHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.nameLen),
		bin.Int(&h.dataLen),
	)
}

// MarshalBinary encodes the Bundle for an external emitter.
// The fingerprint isn't included, since it's derived from the key.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	var (
		buf    bytes.Buffer
		endian = binary.BigEndian
	)
	hdr := bundleHeader{
		magicA:    bundleMagicA,
		magicB:    bundleMagicB,
		version:   bundleVersion,
		keyLen:    uint64(len(b.ObfuscatedKey)),
		siteCount: uint64(len(b.Sites)),
	}
	if err := hdr.mapper().Write(&buf, endian); err != nil {
		return nil, err
	}
	buf.Write(b.ObfuscatedKey)
	for _, site := range b.Sites {
		sh := siteHeader{
			nameLen: uint64(len(site.Name)),
			dataLen: uint64(len(site.Ciphertext)),
		}
		if err := sh.mapper().Write(&buf, endian); err != nil {
			return nil, err
		}
		buf.WriteString(site.Name)
		buf.Write(site.Ciphertext)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a Bundle produced by MarshalBinary.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	var (
		buf    = bytes.NewBuffer(data)
		endian = binary.BigEndian
		hdr    bundleHeader
	)
	if err := hdr.mapper().Read(buf, endian); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if hdr.magicA != bundleMagicA || hdr.magicB != bundleMagicB {
		return fmt.Errorf("%w: bad magic bytes", ErrInvalidBundle)
	}
	if hdr.version != bundleVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidBundle, hdr.version)
	}
	key, err := readField(buf, hdr.keyLen)
	if err != nil {
		return err
	}
	// Each site needs at least its header.
	if hdr.siteCount > uint64(buf.Len()) {
		return fmt.Errorf("%w: site count %d exceeds remaining data", ErrInvalidBundle, hdr.siteCount)
	}
	sites := make([]Site, 0, int(hdr.siteCount))
	for i := uint64(0); i < hdr.siteCount; i++ {
		var sh siteHeader
		if err := sh.mapper().Read(buf, endian); err != nil {
			return fmt.Errorf("%w: site %d: %v", ErrInvalidBundle, i, err)
		}
		name, err := readField(buf, sh.nameLen)
		if err != nil {
			return err
		}
		ciphertext, err := readField(buf, sh.dataLen)
		if err != nil {
			return err
		}
		sites = append(sites, Site{
			Name: string(name),
			Call: Call{Ciphertext: ciphertext, Key: key},
		})
	}
	if buf.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidBundle, buf.Len())
	}
	b.Prelude = Prelude{
		ObfuscatedKey: key,
		Fingerprint:   fingerprint(key),
	}
	b.Sites = sites
	return nil
}

func readField(buf *bytes.Buffer, length uint64) ([]byte, error) {
	if length > uint64(buf.Len()) {
		return nil, fmt.Errorf("%w: field length %d exceeds remaining data", ErrInvalidBundle, length)
	}
	field := make([]byte, int(length))
	if _, err := io.ReadFull(buf, field); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return field, nil
}
