package xor

// Encode returns the result of XOR'ing source with key, where key is an infinitely repeating byte sequence.
// An empty key returns an unmodified copy of source.
// The returned slice never aliases source.
func Encode(source, key []byte) []byte {
	switch len(key) {
	case 0:
		return append(make([]byte, 0, len(source)), source...)
	case 1:
		return EncodeByte(source, key[0])
	}
	out := make([]byte, len(source))
	scr := newXorScreen(key)
	for i, b := range source {
		out[i] = scr.screen(b)
	}
	return out
}

// Decode reverses Encode.
// XOR is its own inverse, so this is exactly the same operation as Encode with the same key.
func Decode(source, key []byte) []byte {
	return Encode(source, key)
}

// EncodeByte returns the result of XOR'ing every byte of source with b.
func EncodeByte(source []byte, b byte) []byte {
	out := make([]byte, len(source))
	for i, s := range source {
		out[i] = s ^ b
	}
	return out
}
