package value

// Equal reports whether v and other represent the same FastRPC value under
// the wire format's equality rules: struct field order is not significant, array
// order is.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindDouble:
		return v.Double == other.Double || (v.Double != v.Double && other.Double != other.Double) //nolint:staticcheck // NaN equals NaN here
	case KindString:
		return v.Str == other.Str
	case KindBinary:
		return bytesEqual(v.Binary, other.Binary)
	case KindDateTime:
		return v.DateTime == other.DateTime
	case KindArray:
		return arrayEqual(v.Array, other.Array)
	case KindStruct:
		return structEqual(v.Struct, other.Struct)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func arrayEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

func structEqual(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !av.Equal(bv) {
			return false
		}
	}

	return true
}

// Equal reports whether m and other are the same envelope: same kind, and
// matching method/params or fault code/message as appropriate. Parameter
// order matters (it is positional); struct field order within a parameter
// does not (see Value.Equal).
func (m Message) Equal(other Message) bool {
	if m.Kind != other.Kind {
		return false
	}

	switch m.Kind {
	case EnvelopeCall:
		if m.Method != other.Method || len(m.Params) != len(other.Params) {
			return false
		}
		for i := range m.Params {
			if !m.Params[i].Equal(other.Params[i]) {
				return false
			}
		}

		return true
	case EnvelopeResponse:
		if len(m.Params) != 1 || len(other.Params) != 1 {
			return len(m.Params) == len(other.Params)
		}

		return m.Params[0].Equal(other.Params[0])
	case EnvelopeFault:
		return m.FaultCode == other.FaultCode && m.FaultMessage == other.FaultMessage
	default:
		return false
	}
}
