package xor

import (
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and restart the key from its first byte.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and restart the key from its first byte.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	scr    *xorScreen
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	for i := 0; i < n; i++ {
		out[i] = r.scr.screen(out[i])
	}
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.scr.reset()
}

// NewReader constructs a new Reader that will perform XOR operations on all bytes read, using the provided key.
// The keystream continues across calls to Read, so reading in chunks gives the same result as Encode.
func NewReader(r io.Reader, key []byte) Reader {
	return &reader{
		source: r,
		scr:    newXorScreen(key),
	}
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	scr    *xorScreen
}

// NewWriter constructs a new Writer that will perform XOR operations on all bytes written, using the provided key.
func NewWriter(target io.Writer, key []byte) Writer {
	return &writer{
		target: target,
		scr:    newXorScreen(key),
	}
}

func (w *writer) Write(in []byte) (n int, err error) {
	buf := make([]byte, len(in))
	for i := 0; i < len(in); i++ {
		buf[i] = w.scr.screen(in[i])
	}
	return w.target.Write(buf)
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.scr.reset()
}
