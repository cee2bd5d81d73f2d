package notation

import "strings"

// scanner is a byte cursor over one notation literal
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// accept consumes the next byte if it is one of chars
func (s *scanner) accept(chars string) (byte, bool) {
	if s.eof() || !strings.ContainsRune(chars, rune(s.src[s.pos])) {
		return 0, false
	}
	c := s.src[s.pos]
	s.pos++
	return c, true
}

// acceptLiteral consumes lit if the input continues with it
func (s *scanner) acceptLiteral(lit string) bool {
	if strings.HasPrefix(s.src[s.pos:], lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// digits consumes a run of ASCII digits
func (s *scanner) digits() string {
	start := s.pos
	for !s.eof() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// decimal consumes an unsigned decimal such as "1", "0.75" or ".5"
func (s *scanner) decimal() string {
	start := s.pos
	s.digits()
	if s.peek() == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]) {
		s.pos++
		s.digits()
	}
	return s.src[start:s.pos]
}

// until consumes bytes up to, not including, the first byte in stop
func (s *scanner) until(stop string) string {
	start := s.pos
	for !s.eof() && !strings.ContainsRune(stop, rune(s.src[s.pos])) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) rest() string {
	return s.src[s.pos:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
