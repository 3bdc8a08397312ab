package token

import (
	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/internal/options"
	"github.com/fastrpc-go/fastrpc/internal/pool"
	"github.com/fastrpc-go/fastrpc/wire"
)

var stackPool = pool.NewStackPool[frame]()

// Tokenizer is the pull-based, chunked FastRPC decoder. The zero value is
// not usable; construct one with New.
//
// A Tokenizer decodes exactly one logical message over its lifetime. Call
// Reset to reuse the instance for the next message on the same connection.
type Tokenizer struct {
	version   wire.Version
	allowFrps bool
	maxDepth  int

	stack []frame
	st    staging

	pos int
	err error

	// envelope remembers which envelope kind this message is, purely so
	// trailing-byte detection (stack drained, more bytes offered) can
	// report the structurally-appropriate error: a 3rd fault value is
	// "invalid fault", not the generic "data after end" a stray byte after
	// a Response gets.
	envelope     wire.Type
	haveEnvelope bool

	cb Callback
}

// New constructs a Tokenizer ready to decode one message.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{maxDepth: DefaultMaxDepth, stack: stackPool.Get()}
	// Options defined by this package never return an error.
	_ = options.Apply(t, opts...)
	t.resetState()

	return t
}

// Release returns the Tokenizer's frame stack to a shared pool for reuse by
// a future New call, and detaches it from this Tokenizer. Call this when a
// Tokenizer is being discarded (e.g. a connection closed) rather than
// recycled with Reset — it is an optional optimization, never required for
// correctness.
func (t *Tokenizer) Release() {
	if t.stack != nil {
		stackPool.Put(t.stack)
		t.stack = nil
	}
}

// Reset returns the Tokenizer to its initial state, ready to decode a new
// message. Configuration (max depth, frps mode) is preserved.
func (t *Tokenizer) Reset() {
	t.resetState()
}

func (t *Tokenizer) resetState() {
	t.stack = t.stack[:0]
	t.stack = append(t.stack, frame{kind: kInit})
	t.st.reset(wire.HeaderLength)
	t.pos = 0
	t.err = nil
	t.haveEnvelope = false
}

// Err returns the error that halted parsing, or nil if parsing has not
// failed (it may still be in progress, or may have completed successfully).
func (t *Tokenizer) Err() error {
	return t.err
}

// Close tells the Tokenizer that no more input is coming. For envelopes
// with a wire-defined end (Response/Fault outside frps mode) this is a
// no-op once the envelope has already completed. For envelopes with no
// wire-defined end — a Call's parameter list, or a frps Response's
// Data/value interleaving — reaching here while idle between values is the
// normal, successful way to finish; reaching here mid-field is a premature
// EOF.
func (t *Tokenizer) Close() error {
	if t.err != nil {
		return t.err
	}
	if len(t.stack) == 0 {
		return nil
	}
	top := t.stack[len(t.stack)-1]
	if (top.kind == kCallParams) || (top.kind == kResponseBody && t.allowFrps && top.started) {
		t.stack = t.stack[:0]
		return nil
	}

	err := errs.AtPosition(t.pos, errs.ErrUnexpectedDataEnd)
	t.err = err
	if t.cb != nil {
		t.cb.Error(errs.ErrUnexpectedDataEnd.Error())
	}

	return err
}

// Parse feeds one chunk of bytes to the tokenizer. It returns whether more
// input may still be consumed (expectingMore) and how many bytes of chunk
// were consumed. Parse may be called repeatedly with successive chunks of
// the same logical message, including a 1-byte-at-a-time split; it may also
// be called with a zero-length chunk to check the current expectingMore
// value without consuming anything.
//
// Once parsing has failed (Err() != nil), Parse always returns (false, 0):
// the tokenizer is not restartable without an explicit Reset.
func (t *Tokenizer) Parse(chunk []byte, cb Callback) (expectingMore bool, consumed int) {
	if t.err != nil {
		return false, 0
	}

	if len(t.stack) == 0 {
		if len(chunk) == 0 {
			return false, 0
		}
		// A prior message already ran to completion (Response/Fault
		// Finish, or an explicit Close of an open-ended one) and the
		// caller handed us more bytes anyway.
		err := errs.ErrDataAfterEnd
		if t.haveEnvelope && t.envelope == wire.TypeFault {
			err = errs.ErrInvalidFault
		}
		wrapped := errs.AtPosition(t.pos, err)
		t.err = wrapped
		cb.Error(err.Error())

		return false, 0
	}

	t.cb = cb
	cur := chunk

	for len(t.stack) > 0 {
		before := len(cur)
		needMore, err := t.step(&cur)
		t.pos += before - len(cur)

		if err != nil {
			t.err = errs.AtPosition(t.pos, err)
			cb.Error(err.Error())

			return false, len(chunk) - len(cur)
		}
		if needMore {
			return true, len(chunk) - len(cur)
		}
	}

	return false, len(chunk) - len(cur)
}

// step advances the frame on top of the stack by as much as cur currently
// allows, mutating t.stack (morphing the top frame in place, pushing a
// child, or popping) as needed.
func (t *Tokenizer) step(cur *[]byte) (needMore bool, err error) {
	switch t.stack[len(t.stack)-1].kind {
	case kInit:
		return t.stepInit(cur)
	case kMessageType:
		return t.stepMessageType(cur)
	case kCallNameLen:
		return t.stepCallNameLen(cur)
	case kCallName:
		return t.stepCallName(cur)
	case kCallParams:
		return t.stepCallParams(cur)
	case kValueTag:
		return t.stepValueTag(cur)
	case kIntPayload:
		return t.stepIntPayload(cur)
	case kDoublePayload:
		return t.stepDoublePayload(cur)
	case kDateTimePayload:
		return t.stepDateTimePayload(cur)
	case kLength:
		return t.stepLength(cur)
	case kStrData:
		return t.stepStrData(cur)
	case kBinData:
		return t.stepBinData(cur)
	case kArrayItems:
		return t.stepArrayItems(cur)
	case kStructItems:
		return t.stepStructItems(cur)
	case kStructKeyLen:
		return t.stepStructKeyLen(cur)
	case kStructKeyData:
		return t.stepStructKeyData(cur)
	case kResponseBody:
		return t.stepResponseBody(cur)
	case kFaultBody:
		return t.stepFaultBody(cur)
	case kDataLen:
		return t.stepDataLen(cur)
	case kDataBody:
		return t.stepDataBody(cur)
	default:
		return false, errs.ErrUnknownType
	}
}

func (t *Tokenizer) top() *frame {
	return &t.stack[len(t.stack)-1]
}

func (t *Tokenizer) push(f frame) error {
	if len(t.stack) >= t.maxDepth {
		return errs.ErrTooDeep
	}
	t.stack = append(t.stack, f)

	return nil
}

func (t *Tokenizer) pop() {
	t.stack = t.stack[:len(t.stack)-1]
}

// emit turns a callback's bool return into an error, so every call site can
// just `if err := t.emit(t.cb.Foo()); err != nil { return false, err }`.
func (t *Tokenizer) emit(ok bool) error {
	if !ok {
		return errs.ErrCallbackStopped
	}

	return nil
}

// readByte consumes exactly one byte from cur if available. A single byte
// never spans a chunk boundary in a meaningful way — either it is there or
// Parse must pause — so this bypasses the staging buffer entirely.
func readByte(cur *[]byte) (byte, bool) {
	if len(*cur) == 0 {
		return 0, false
	}
	b := (*cur)[0]
	*cur = (*cur)[1:]

	return b, true
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
