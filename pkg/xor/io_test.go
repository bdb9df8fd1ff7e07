package xor

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWrite(t *testing.T) {
	data := "A string with some text"
	key := []byte{0xde, 0xad, 0xbe, 0xef}
	var output strings.Builder

	in := NewReader(strings.NewReader(data), key)
	out := NewWriter(&output, key)

	expectedLen := int64(len(data))
	n, err := io.Copy(out, in)
	assert.NoError(t, err)
	assert.Equal(t, expectedLen, n)
	assert.Equal(t, "A string with some text", output.String())
}

func TestWriter_MatchesEncode(t *testing.T) {
	var (
		out  bytes.Buffer
		data = []byte("Very secret word")
		key  = []byte("MY-SECRET-SPELL")
	)
	w := NewWriter(&out, key)
	// Split writes must continue the keystream.
	_, err := w.Write(data[:5])
	assert.NoError(t, err)
	_, err = w.Write(data[5:])
	assert.NoError(t, err)
	assert.Equal(t, Encode(data, key), out.Bytes())
}

func TestWriter_EmptyKey(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, nil)
	_, err := w.Write([]byte{0x0, 0x1})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x0, 0x1}, out.Bytes())
}

func TestWriter_Reset(t *testing.T) {
	var (
		outA bytes.Buffer
		outB bytes.Buffer
		in   = []byte{0x0, 0x1}
		key  = []byte{0x1, 0x1, 0x2}
	)
	w := NewWriter(&outA, key)
	n, err := w.Write(in)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x0}, outA.Bytes())

	w.Reset(&outB)
	n, err = w.Write(in)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x0}, outB.Bytes())
}

func TestReader_Reset(t *testing.T) {
	var (
		outA = make([]byte, 2)
		outB = make([]byte, 2)
		in   = []byte{0x0, 0x1}
		key  = []byte{0x1, 0x1, 0x2}
	)
	r := NewReader(bytes.NewReader(in), key)
	n, err := r.Read(outA)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x0}, outA)

	r.Reset(bytes.NewReader(in))
	n, err = r.Read(outB)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x0}, outB)
}
