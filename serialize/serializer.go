package serialize

import (
	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/internal/options"
	"github.com/fastrpc-go/fastrpc/internal/pool"
	"github.com/fastrpc-go/fastrpc/value"
	"github.com/fastrpc-go/fastrpc/wire"
)

var stackPool = pool.NewStackPool[frame]()

// Serializer writes FastRPC messages into caller-supplied buffers,
// suspending and resuming across dst boundaries exactly as package token
// suspends and resumes across input-chunk boundaries. A Serializer writes
// one protocol revision, set via WithVersion (wire.DefaultVersion, 3.0, if
// unset).
//
// The zero value is not usable; construct with New.
type Serializer struct {
	version wire.Version

	stack []frame
	src   source

	err error
}

// New returns a Serializer ready to begin a Write* call.
func New(opts ...Option) *Serializer {
	s := &Serializer{version: wire.DefaultVersion, stack: stackPool.Get()}
	_ = options.Apply(s, opts...)

	return s
}

// Release returns the Serializer's frame stack to a shared pool for reuse
// by a future New call, and detaches it from this Serializer. Call this
// when a Serializer is being discarded rather than recycled with Reset; it
// is an optional optimization, never required for correctness.
func (s *Serializer) Release() {
	if s.stack != nil {
		stackPool.Put(s.stack)
		s.stack = nil
	}
}

// Reset discards any in-progress (suspended) operation and any recorded
// error, returning the Serializer to its initial state.
func (s *Serializer) Reset() {
	s.stack = s.stack[:0]
	s.src = source{}
	s.err = nil
}

// Err returns the error that halted writing, or nil.
func (s *Serializer) Err() error { return s.err }

// Done reports whether the in-progress Write* operation has fully drained:
// false means dst ran out with more left to write (call the same operation
// again with more room), true means either the operation completed or it
// failed (check Err).
func (s *Serializer) Done() bool { return !s.busy() }

// busy reports whether a previous Write* call suspended partway through and
// must be resumed before a new operation can start.
func (s *Serializer) busy() bool { return len(s.stack) > 0 }

// begin replaces the stack with frames, topmost-first: frames[0] is
// processed before frames[1], and so on.
func (s *Serializer) begin(frames ...frame) {
	s.stack = s.stack[:0]
	for i := len(frames) - 1; i >= 0; i-- {
		s.stack = append(s.stack, frames[i])
	}
}

func (s *Serializer) top() *frame { return &s.stack[len(s.stack)-1] }

func (s *Serializer) push(f frame) { s.stack = append(s.stack, f) }

func (s *Serializer) pop() { s.stack = s.stack[:len(s.stack)-1] }

// WriteCall writes a Call envelope's header and method name into dst. Its
// parameters are not part of this call: each is written by a separate
// WriteValue call, since the wire format places no count or terminator on a
// Call's parameter list.
//
// It returns the number of bytes written. If dst is exhausted before the
// method name completes, n < what a fully-drained dst would need and Err()
// is nil; call WriteCall again (the method argument is ignored on a resume)
// with more room to continue.
func (s *Serializer) WriteCall(dst []byte, method string) (int, error) {
	if !s.busy() {
		if len(method) == 0 {
			return 0, errs.ErrEmptyMethodName
		}
		if len(method) > wire.MaxMethodNameLength {
			return 0, errs.ErrMethodNameTooLong
		}

		s.begin(
			frame{kind: kHeader},
			frame{kind: kEnvelopeTag, envelope: byte(wire.TypeCall)},
			frame{kind: kCallName, method: method},
		)
	}

	return s.drain(dst)
}

// WriteResponse writes a Response envelope's header and value into dst.
func (s *Serializer) WriteResponse(dst []byte, v value.Value) (int, error) {
	if !s.busy() {
		s.begin(
			frame{kind: kHeader},
			frame{kind: kEnvelopeTag, envelope: byte(wire.TypeResponse)},
			frame{kind: kValue, value: v},
		)
	}

	return s.drain(dst)
}

// WriteFault writes a Fault envelope's header, code and message into dst.
func (s *Serializer) WriteFault(dst []byte, code int64, message string) (int, error) {
	if !s.busy() {
		s.begin(
			frame{kind: kHeader},
			frame{kind: kEnvelopeTag, envelope: byte(wire.TypeFault)},
			frame{kind: kValue, value: value.Int(code)},
			frame{kind: kValue, value: value.Str(message)},
		)
	}

	return s.drain(dst)
}

// WriteValue writes a single standalone Value's wire bytes, with no
// envelope header, into dst. This is how a Call's parameters and an frps
// Response's interleaved values are written, and it recurses naturally for
// array and struct children.
func (s *Serializer) WriteValue(dst []byte, v value.Value) (int, error) {
	if !s.busy() {
		s.begin(frame{kind: kValue, value: v})
	}

	return s.drain(dst)
}

// WriteData writes one frps Data block (no envelope header) into dst. Data
// interleaves with Response values at the byte-stream level in frps mode;
// the caller is responsible for placing these calls where the protocol
// expects them.
func (s *Serializer) WriteData(dst []byte, data []byte) (int, error) {
	if !s.busy() {
		s.begin(frame{kind: kDataHead, data: data})
	}

	return s.drain(dst)
}

// drain runs the frame stack against dst until it empties (the operation
// completed), dst runs out (suspend), or a step fails.
func (s *Serializer) drain(dst []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	cur := dst
	for len(s.stack) > 0 {
		needMore, err := s.step(&cur)
		if err != nil {
			s.err = err
			s.stack = s.stack[:0]

			return len(dst) - len(cur), err
		}
		if needMore {
			return len(dst) - len(cur), nil
		}
	}

	return len(dst) - len(cur), nil
}

func (s *Serializer) step(cur *[]byte) (needMore bool, err error) {
	switch s.top().kind {
	case kHeader:
		return s.stepHeader(cur)
	case kEnvelopeTag:
		return s.stepEnvelopeTag(cur)
	case kCallName:
		return s.stepCallName(cur)
	case kValue:
		return s.stepValue(cur)
	case kArrayItems:
		return s.stepArrayItems(cur)
	case kStructItems:
		return s.stepStructItems(cur)
	case kStructKey:
		return s.stepStructKey(cur)
	case kDataHead:
		return s.stepDataHead(cur)
	default:
		return false, errs.ErrUnknownType
	}
}

// writeBuf initializes the top frame's producer source from buf on first
// entry and flushes it into cur, reporting whether bytes remain pending
// (dst ran out before buf fully drained).
func (s *Serializer) writeBuf(cur *[]byte, buf []byte) bool {
	top := s.top()
	if !top.started {
		s.src.setProducer(buf)
		top.started = true
	}
	s.src.flush(cur)

	return !s.src.isEmpty()
}

// writeBorrow is writeBuf's counterpart for byte slices owned by the
// caller's Value tree, copied straight into dst with no intermediate copy.
func (s *Serializer) writeBorrow(cur *[]byte, buf []byte) bool {
	top := s.top()
	if !top.started {
		s.src.setBorrow(buf)
		top.started = true
	}
	s.src.flush(cur)

	return !s.src.isEmpty()
}
