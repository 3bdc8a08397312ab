package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// String renders v in the diff-friendly textual form used by round-trip
// tests: arrays and struct fields are comma-joined inside
// parentheses/braces, strings are double-quoted, and struct keys are sorted
// lexicographically so two structurally-equal trees always print
// identically regardless of the map iteration or wire order they arrived in.
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)

	return b.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindDouble:
		b.WriteString(strconv.FormatFloat(v.Double, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.Str))
	case KindBinary:
		fmt.Fprintf(b, "0x%x", v.Binary)
	case KindDateTime:
		fmt.Fprintf(b, "datetime(%d)", v.DateTime.Timestamp)
	case KindArray:
		b.WriteByte('(')
		for i, item := range v.Array {
			if i > 0 {
				b.WriteString(", ")
			}
			item.writeTo(b)
		}
		b.WriteByte(')')
	case KindStruct:
		keys := make([]string, 0, len(v.Struct))
		for k := range v.Struct {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", k)
			v.Struct[k].writeTo(b)
		}
		b.WriteByte('}')
	}
}

// String renders the envelope in the conventional FastRPC outcome format:
//   - a Call prints "<method>(<args>)"
//   - a Response prints "(<value>)" (the single value, still parenthesized
//     as an implicit 1-tuple)
//   - a Fault prints "fault(<code>, <msg>)"
func (m Message) String() string {
	switch m.Kind {
	case EnvelopeCall:
		var b strings.Builder
		b.WriteString(m.Method)
		b.WriteByte('(')
		for i, p := range m.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte(')')

		return b.String()
	case EnvelopeResponse:
		if len(m.Params) != 1 {
			return "response()"
		}

		return "(" + m.Params[0].String() + ")"
	case EnvelopeFault:
		return fmt.Sprintf("fault(%d, %s)", m.FaultCode, strconv.Quote(m.FaultMessage))
	default:
		return ""
	}
}
