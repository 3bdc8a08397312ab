package serialize

// sourceBufSize bounds the serializer's producer buffer: a tag byte (1) plus
// the widest fixed-size payload it ever assembles in one shot, a 3.0
// date-time (14), for 15 total.
const sourceBufSize = 15

// source is the serializer's staging cursor. It holds pending output bytes
// in one of two modes: producer mode copies a small computed buffer (a tag,
// a length head, an integer/double/date-time payload) into sourceBufSize
// bytes up front; borrow mode instead tracks an offset into a slice owned by
// the caller's Value tree (a string's bytes, a binary's bytes, a struct
// key, a method name, a frps data payload) so large payloads are never
// copied.
//
// Either way, flush drains whatever is pending into dst, picking up exactly
// where the last call left off, which is what lets a Write* call suspend
// mid-field when dst runs out and resume on the next call.
type source struct {
	mode sourceMode
	buf  [sourceBufSize]byte
	n    int // valid producer bytes in buf
	ext  []byte
	off  int
}

type sourceMode uint8

const (
	sourceNone sourceMode = iota
	sourceProducer
	sourceBorrow
)

func (s *source) setProducer(b []byte) {
	s.mode = sourceProducer
	s.n = copy(s.buf[:], b)
	s.off = 0
}

func (s *source) setBorrow(b []byte) {
	s.mode = sourceBorrow
	s.ext = b
	s.off = 0
}

func (s *source) isEmpty() bool {
	switch s.mode {
	case sourceProducer:
		return s.off >= s.n
	case sourceBorrow:
		return s.off >= len(s.ext)
	default:
		return true
	}
}

// flush copies as many pending bytes as fit in *cur, advancing *cur past
// what was written.
func (s *source) flush(cur *[]byte) {
	var pending []byte
	switch s.mode {
	case sourceProducer:
		pending = s.buf[s.off:s.n]
	case sourceBorrow:
		pending = s.ext[s.off:]
	default:
		return
	}

	n := copy(*cur, pending)
	s.off += n
	*cur = (*cur)[n:]
}
