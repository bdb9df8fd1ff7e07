package xor

type xorScreen struct {
	key []byte
	cur int
}

func newXorScreen(key []byte) *xorScreen {
	return &xorScreen{key: key}
}

func (s *xorScreen) screen(b byte) byte {
	if len(s.key) == 0 {
		return b
	}
	b ^= s.key[s.cur]
	s.cur = nextIndex(s.cur, len(s.key))
	return b
}

func (s *xorScreen) reset() {
	s.cur = 0
}

// nextIndex advances a position within a key of length count, wrapping to 0.
func nextIndex(index, count int) int {
	if index+1 < count {
		return index + 1
	}
	return 0
}
