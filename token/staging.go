package token

import "github.com/fastrpc-go/fastrpc/wire"

// staging accumulates a fixed-size field that may be split across two or
// more Parse calls. It is shared by every frame on the stack (only the top
// frame is ever actively reading, so there is never contention) and is reset
// exactly once, at the moment a multi-byte field is entered, not on every
// fill call — resetting on every call would discard bytes already staged
// from an earlier, partial Parse invocation.
type staging struct {
	buf  [wire.StagingBufferSize]byte
	len  int
	need int
}

func (s *staging) reset(need int) {
	s.len = 0
	s.need = need
}

// fill copies as many bytes as available from *cur into the staging buffer,
// advancing *cur past what it consumed, and reports whether the full need
// has now been met.
func (s *staging) fill(cur *[]byte) bool {
	remaining := s.need - s.len
	if remaining <= 0 {
		return true
	}

	avail := *cur
	n := remaining
	if len(avail) < n {
		n = len(avail)
	}

	copy(s.buf[s.len:], avail[:n])
	s.len += n
	*cur = avail[n:]

	return s.len >= s.need
}

func (s *staging) bytes() []byte {
	return s.buf[:s.need]
}
