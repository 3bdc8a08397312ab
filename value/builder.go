package value

import (
	"errors"
	"unicode/utf8"

	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/internal/keytrack"
	"github.com/fastrpc-go/fastrpc/token"
)

var _ token.Callback = (*Builder)(nil)

// Status summarizes what kind of outcome a Builder ended up with.
type Status uint8

const (
	StatusInit Status = iota
	StatusCall
	StatusResponse
	StatusFault
	StatusError
)

type containerKind uint8

const (
	containerString containerKind = iota
	containerBinary
	containerArray
	containerStruct
)

// container is one open composite on the Builder's construction stack,
// mirroring the tokenizer's own frame stack one level at a time: a
// string/binary container accumulates raw bytes, an array container
// accumulates child values in order, and a struct container accumulates a
// key (itself possibly chunked) immediately followed by its value.
type container struct {
	kind containerKind

	buf []byte // string/binary payload accumulator

	arr []Value

	strct         map[string]Value
	tracker       *keytrack.Tracker
	keyBuf        []byte
	pendingKey    string
	hasPendingKey bool
}

// Builder is the reference token.Callback implementation: it materializes
// the tokenizer's event stream into a Value tree and the enclosing Message
// envelope. It is the simplest possible consumer and is used throughout the
// test suite as the round-trip oracle.
//
// A Builder decodes one message; call Reset to reuse it for the next one.
type Builder struct {
	status Status
	err    error

	methodBuf []byte
	params    []Value

	faultCode    int64
	faultMessage string
	faultStage   int

	pending    Value
	hasPending bool

	containers []container

	Data []byte // accumulated frps stream_data payload, if any
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset clears the Builder so it can decode another message.
func (b *Builder) Reset() {
	*b = Builder{}
}

// Status reports what kind of envelope was (or is being) decoded.
func (b *Builder) Status() Status { return b.status }

// Err returns the error that halted decoding, or nil. When the Builder
// itself caught the problem (e.g. a duplicate struct key or invalid UTF-8,
// which only the Builder can see) it is that errs sentinel, usable with
// errors.Is. When the tokenizer caught it and reported it through Error, it
// is a plain error carrying the tokenizer's message text, not the sentinel;
// the Tokenizer's own Err returns the sentinel in that case.
func (b *Builder) Err() error {
	if b.status == StatusError {
		return b.err
	}

	return nil
}

// Message returns the decoded envelope. It is only meaningful once parsing
// has completed successfully (Status() != StatusError).
func (b *Builder) Message() Message {
	switch b.status {
	case StatusCall:
		return Message{Kind: EnvelopeCall, Method: string(b.methodBuf), Params: b.params}
	case StatusResponse:
		v := Null()
		if len(b.params) > 0 {
			v = b.params[0]
		}

		return Response(v)
	case StatusFault:
		return Fault(b.faultCode, b.faultMessage)
	default:
		return Message{}
	}
}

func (b *Builder) fail(err error) bool {
	if b.status != StatusError {
		b.status = StatusError
		b.err = err
	}

	return false
}

// Error implements token.Callback. It records the tokenizer's reason for
// halting, but only if Builder has not already recorded a more specific
// reason of its own (e.g. invalid UTF-8, duplicate key) — those are
// reported by returning false from the event that detected them, and the
// tokenizer then calls Error with its own generic "callback requested stop"
// text, which must not clobber the real reason. A tokenizer-detected error
// arrives as plain text (the token.Callback contract carries no sentinel
// across that boundary), so it is wrapped as a new error rather than
// matched against an errs sentinel.
func (b *Builder) Error(msg string) {
	if b.status != StatusError {
		b.status = StatusError
		b.err = errors.New(msg)
	}
}

func (b *Builder) Version(major, minor uint8) bool { return true }

func (b *Builder) Call(chunk []byte, totalLen int) bool {
	if b.status == StatusInit {
		b.status = StatusCall
	}
	b.methodBuf = append(b.methodBuf, chunk...)

	return true
}

func (b *Builder) Response() bool {
	b.status = StatusResponse

	return true
}

func (b *Builder) Fault() bool {
	b.status = StatusFault

	return true
}

func (b *Builder) StreamData(chunk []byte) bool {
	b.Data = append(b.Data, chunk...)

	return true
}

func (b *Builder) Null() bool { return b.setPending(Null()) }

func (b *Builder) Boolean(v bool) bool { return b.setPending(Bool(v)) }

func (b *Builder) Integer(v int64) bool { return b.setPending(Int(v)) }

func (b *Builder) DoubleNumber(v float64) bool { return b.setPending(Double(v)) }

func (b *Builder) DateTimeValue(v DateTime) bool { return b.setPending(DateTimeValue(v)) }

func (b *Builder) setPending(v Value) bool {
	b.pending = v
	b.hasPending = true

	return true
}

func (b *Builder) StringBegin(length int) bool {
	b.containers = append(b.containers, container{kind: containerString, buf: make([]byte, 0, length)})

	return true
}

func (b *Builder) StringData(chunk []byte, totalLen int) bool {
	c := b.top()
	c.buf = append(c.buf, chunk...)

	return true
}

func (b *Builder) BinaryBegin(length int) bool {
	b.containers = append(b.containers, container{kind: containerBinary, buf: make([]byte, 0, length)})

	return true
}

func (b *Builder) BinaryData(chunk []byte, totalLen int) bool {
	c := b.top()
	c.buf = append(c.buf, chunk...)

	return true
}

func (b *Builder) ArrayBegin(count int) bool {
	b.containers = append(b.containers, container{kind: containerArray, arr: make([]Value, 0, count)})

	return true
}

func (b *Builder) StructBegin(count int) bool {
	b.containers = append(b.containers, container{
		kind:    containerStruct,
		strct:   make(map[string]Value, count),
		tracker: keytrack.New(count),
	})

	return true
}

func (b *Builder) StructKey(chunk []byte, totalLen int) bool {
	c := b.top()
	c.keyBuf = append(c.keyBuf, chunk...)
	if len(c.keyBuf) < totalLen {
		return true
	}

	key := string(c.keyBuf)
	c.keyBuf = c.keyBuf[:0]

	if !utf8.ValidString(key) {
		return b.fail(errs.ErrInvalidUTF8Key)
	}
	if err := c.tracker.Add(key); err != nil {
		return b.fail(err)
	}
	c.pendingKey = key
	c.hasPendingKey = true

	return true
}

func (b *Builder) ValueEnd() bool {
	if b.hasPending {
		v := b.pending
		b.hasPending = false

		return b.deliver(v)
	}

	n := len(b.containers)
	if n == 0 {
		return b.fail(errs.ErrUnexpectedDataEnd)
	}
	c := b.containers[n-1]
	b.containers = b.containers[:n-1]

	var v Value
	switch c.kind {
	case containerString:
		s := string(c.buf)
		if !utf8.ValidString(s) {
			return b.fail(errs.ErrInvalidUTF8String)
		}
		v = Str(s)
	case containerBinary:
		v = Binary(c.buf)
	case containerArray:
		v = Arr(c.arr)
	case containerStruct:
		v = Struc(c.strct)
	}

	return b.deliver(v)
}

// deliver routes a just-completed value either into the container now on
// top of the stack (its array or the struct slot named by the key read just
// before it) or, if the stack is empty, into the top-level envelope per the
// current Status.
func (b *Builder) deliver(v Value) bool {
	if len(b.containers) > 0 {
		c := b.top()
		switch c.kind {
		case containerArray:
			c.arr = append(c.arr, v)
		case containerStruct:
			if !c.hasPendingKey {
				return b.fail(errs.ErrUnexpectedDataEnd)
			}
			c.strct[c.pendingKey] = v
			c.hasPendingKey = false
		}

		return true
	}

	switch b.status {
	case StatusCall, StatusResponse:
		b.params = append(b.params, v)
	case StatusFault:
		switch b.faultStage {
		case 0:
			b.faultCode = v.Int
			b.faultStage = 1
		case 1:
			b.faultMessage = v.Str
			b.faultStage = 2
		}
	}

	return true
}

func (b *Builder) top() *container {
	return &b.containers[len(b.containers)-1]
}
