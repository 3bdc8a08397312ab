package token

import "github.com/fastrpc-go/fastrpc/wire"

// Callback receives the tokenizer's event stream in wire order. It is the
// low-level decoder interface; value.Builder is the reference implementation
// that materializes events into a value.Value tree.
//
// Every method that returns bool follows the same contract: returning false
// requests orderly termination, equivalent to the tokenizer detecting a
// protocol error itself. Slices passed to Call, StringData, BinaryData,
// StructKey and StreamData are valid only for the duration of the call — they
// alias the chunk Parse was given and must be copied if retained.
type Callback interface {
	// Error is invoked exactly once, when parsing halts for any reason
	// (a detected protocol violation or a false return from any other
	// method). msg is the sentinel error's message text, e.g. "unknown type".
	Error(msg string)

	// Version reports the header's protocol revision before anything else.
	Version(major, minor uint8) bool

	// Call, Response and Fault report which envelope the message is. Exactly
	// one of them fires per message, immediately after Version.
	Call(methodChunk []byte, totalLen int) bool
	Response() bool
	Fault() bool

	// StreamData delivers one chunk of an frps-mode interleaved data block.
	// It is not wrapped by a Begin/End pair or followed by ValueEnd: it is
	// not a value, just an opaque octet run.
	StreamData(chunk []byte) bool

	// Scalars. Each fires exactly once per value, immediately followed by
	// ValueEnd.
	Null() bool
	Boolean(v bool) bool
	Integer(v int64) bool
	DoubleNumber(v float64) bool
	DateTimeValue(v wire.DateTime) bool

	// String and Binary bracket their payload: Begin announces the total
	// length, then one or more *Data calls deliver it (zero calls if the
	// length is zero), then ValueEnd closes the value.
	StringBegin(length int) bool
	StringData(chunk []byte, totalLen int) bool
	BinaryBegin(length int) bool
	BinaryData(chunk []byte, totalLen int) bool

	// Array and Struct bracket their children the same way: Begin announces
	// the count, the children fire as ordinary values (StructBegin additionally
	// interleaves a StructKey call before each child value), then ValueEnd
	// closes the composite once all children have closed.
	ArrayBegin(count int) bool
	StructBegin(count int) bool
	StructKey(chunk []byte, totalLen int) bool

	// ValueEnd closes exactly one value — scalar, string, binary, array or
	// struct — that was opened by the corresponding Begin/scalar call.
	ValueEnd() bool
}
