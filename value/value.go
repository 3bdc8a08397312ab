package value

import "github.com/fastrpc-go/fastrpc/wire"

// Kind discriminates the nine Value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindBinary
	KindDateTime
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindDateTime:
		return "datetime"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// DateTime is the decoded form of a FastRPC date-time value. It is a plain
// alias of wire.DateTime: the wire package owns the bit-packing, value owns
// the tree that carries it around.
type DateTime = wire.DateTime

// Value is a tagged union over the eight FastRPC data types plus Null. Only
// the field(s) matching Kind are meaningful; the zero Value is KindNull.
//
// Struct keys must be unique; Builder enforces this when materializing
// a tree from a tokenizer's events, but a Value constructed directly by a
// caller is not itself validated — callers building trees for the
// serializer are responsible for the invariant.
type Value struct {
	Kind     Kind
	Bool     bool
	Int      int64
	Double   float64
	Str      string
	Binary   []byte
	DateTime DateTime
	Array    []Value
	Struct   map[string]Value
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int returns an Int value.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// Double returns a Double value.
func Double(f float64) Value { return Value{Kind: KindDouble, Double: f} }

// Str returns a Str value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Binary returns a Binary value.
func Binary(b []byte) Value { return Value{Kind: KindBinary, Binary: b} }

// DateTimeValue returns a DateTime value.
func DateTimeValue(dt DateTime) Value { return Value{Kind: KindDateTime, DateTime: dt} }

// Arr returns an Array value.
func Arr(items []Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{Kind: KindArray, Array: items}
}

// Struc returns a Struct value from the given key/value map. The caller is
// responsible for key uniqueness and length invariants when constructing a
// Value directly (Builder enforces both when decoding from the wire).
func Struc(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{Kind: KindStruct, Struct: fields}
}

// Envelope discriminates the three non-data message shapes carried over the
// wire: a method call, a method response, or a fault.
type Envelope uint8

const (
	EnvelopeCall Envelope = iota
	EnvelopeResponse
	EnvelopeFault
)

// Message is a fully decoded (or about-to-be-encoded) FastRPC envelope.
// Exactly one of the fields populated below is meaningful per Kind:
//   - EnvelopeCall: Method + Params
//   - EnvelopeResponse: Params[0]
//   - EnvelopeFault: FaultCode + FaultMessage
type Message struct {
	Kind         Envelope
	Method       string
	Params       []Value
	FaultCode    int64
	FaultMessage string
}

// Call builds a method-call Message.
func Call(method string, params ...Value) Message {
	return Message{Kind: EnvelopeCall, Method: method, Params: params}
}

// Response builds a method-response Message wrapping a single Value.
func Response(v Value) Message {
	return Message{Kind: EnvelopeResponse, Params: []Value{v}}
}

// Fault builds a fault-response Message.
func Fault(code int64, message string) Message {
	return Message{Kind: EnvelopeFault, FaultCode: code, FaultMessage: message}
}
