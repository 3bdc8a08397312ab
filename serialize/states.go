package serialize

import (
	"math"

	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/value"
	"github.com/fastrpc-go/fastrpc/wire"
)

func (s *Serializer) stepHeader(cur *[]byte) (bool, error) {
	var buf [wire.HeaderLength]byte
	wire.EncodeHeader(buf[:], s.version)
	if s.writeBuf(cur, buf[:]) {
		return true, nil
	}
	s.pop()

	return false, nil
}

func (s *Serializer) stepEnvelopeTag(cur *[]byte) (bool, error) {
	top := s.top()
	buf := []byte{wire.MakeTag(wire.Type(top.envelope), 0)}
	if s.writeBuf(cur, buf) {
		return true, nil
	}
	s.pop()

	return false, nil
}

// stepCallName writes the 1-byte method-name length, then the name bytes
// themselves, borrowed directly from the frame's method string.
func (s *Serializer) stepCallName(cur *[]byte) (bool, error) {
	top := s.top()

	if top.stage == 0 {
		if s.writeBuf(cur, []byte{byte(len(top.method))}) {
			return true, nil
		}
		top.stage = 1
		top.started = false

		return false, nil
	}

	if s.writeBorrow(cur, []byte(top.method)) {
		return true, nil
	}
	s.pop()

	return false, nil
}

// stepValue dispatches on the frame's value Kind. Scalars write their tag
// and payload as one producer buffer and pop when drained. String and
// Binary write a head then borrow their payload bytes directly from the
// Value. Array and Struct write a head then morph in place into the
// matching iterator frame, exactly as token's kLength morphs into
// kArrayItems/kStructItems on decode.
func (s *Serializer) stepValue(cur *[]byte) (bool, error) {
	top := s.top()
	v := top.value

	switch v.Kind {
	case value.KindNull:
		if !s.version.AllowsNull() {
			return false, errs.ErrNullNotSupported10
		}
		if s.writeBuf(cur, []byte{wire.MakeTag(wire.TypeNull, 0)}) {
			return true, nil
		}
		s.pop()

		return false, nil

	case value.KindBool:
		info := uint8(0)
		if v.Bool {
			info = 1
		}
		if s.writeBuf(cur, []byte{wire.MakeTag(wire.TypeBool, info)}) {
			return true, nil
		}
		s.pop()

		return false, nil

	case value.KindInt:
		buf, err := s.encodeInt(v.Int)
		if err != nil {
			return false, err
		}
		if s.writeBuf(cur, buf) {
			return true, nil
		}
		s.pop()

		return false, nil

	case value.KindDouble:
		buf := make([]byte, 9)
		buf[0] = wire.MakeTag(wire.TypeDouble, 0)
		wire.PutUint(buf[1:], math.Float64bits(v.Double), 8)
		if s.writeBuf(cur, buf) {
			return true, nil
		}
		s.pop()

		return false, nil

	case value.KindDateTime:
		n := wire.DateTimeLen(s.version)
		buf := make([]byte, 1+n)
		buf[0] = wire.MakeTag(wire.TypeDateTime, 0)
		wire.EncodeDateTime(buf[1:], v.DateTime, s.version)
		if s.writeBuf(cur, buf) {
			return true, nil
		}
		s.pop()

		return false, nil

	case value.KindString:
		return s.stepLengthPrefixed(cur, top, wire.TypeString, len(v.Str), wire.MaxStringLength,
			errs.ErrTooLargeString, func() []byte { return []byte(v.Str) })

	case value.KindBinary:
		return s.stepLengthPrefixed(cur, top, wire.TypeBinary, len(v.Binary), wire.MaxBinaryLength,
			errs.ErrTooLargeBinary, func() []byte { return v.Binary })

	case value.KindArray:
		if len(v.Array) > wire.MaxArrayLength {
			return false, errs.ErrTooLargeArray
		}
		if top.stage == 0 {
			head := make([]byte, wire.HeadLen(len(v.Array), s.version))
			wire.WriteHead(head, wire.TypeArray, len(v.Array), s.version)
			if s.writeBuf(cur, head) {
				return true, nil
			}
			top.stage = 1
			top.started = false

			return false, nil
		}

		*top = frame{kind: kArrayItems, items: v.Array}

		return false, nil

	case value.KindStruct:
		if len(v.Struct) > wire.MaxStructLength {
			return false, errs.ErrTooLargeStruct
		}
		if top.stage == 0 {
			head := make([]byte, wire.HeadLen(len(v.Struct), s.version))
			wire.WriteHead(head, wire.TypeStruct, len(v.Struct), s.version)
			if s.writeBuf(cur, head) {
				return true, nil
			}
			top.stage = 1
			top.started = false

			return false, nil
		}

		keys := make([]string, 0, len(v.Struct))
		for k := range v.Struct {
			keys = append(keys, k)
		}
		*top = frame{kind: kStructItems, keys: keys, strct: v.Struct}

		return false, nil

	default:
		return false, errs.ErrUnknownType
	}
}

// stepLengthPrefixed handles the two length-prefixed scalar kinds (String,
// Binary): write the tag+length head, then borrow the payload bytes.
func (s *Serializer) stepLengthPrefixed(cur *[]byte, top *frame, typ wire.Type, length, ceiling int, tooLarge error, payload func() []byte) (bool, error) {
	if length > ceiling {
		return false, tooLarge
	}

	if top.stage == 0 {
		head := make([]byte, wire.HeadLen(length, s.version))
		wire.WriteHead(head, typ, length, s.version)
		if s.writeBuf(cur, head) {
			return true, nil
		}
		top.stage = 1
		top.started = false

		return false, nil
	}

	if s.writeBorrow(cur, payload()) {
		return true, nil
	}
	s.pop()

	return false, nil
}

func (s *Serializer) stepArrayItems(cur *[]byte) (bool, error) {
	top := s.top()
	if top.idx >= len(top.items) {
		s.pop()

		return false, nil
	}
	item := top.items[top.idx]
	top.idx++
	s.push(frame{kind: kValue, value: item})

	return false, nil
}

func (s *Serializer) stepStructItems(cur *[]byte) (bool, error) {
	top := s.top()
	if top.idx >= len(top.keys) {
		s.pop()

		return false, nil
	}
	key := top.keys[top.idx]
	top.idx++

	if len(key) == 0 {
		return false, errs.ErrEmptyKey
	}
	if len(key) > wire.MaxKeyLength {
		return false, errs.ErrKeyTooLong
	}

	s.push(frame{kind: kStructKey, key: key, value: top.strct[key]})

	return false, nil
}

// stepStructKey writes a struct field's 1-byte key length, then the key
// bytes, then morphs in place into writing the field's value.
func (s *Serializer) stepStructKey(cur *[]byte) (bool, error) {
	top := s.top()

	if top.stage == 0 {
		if s.writeBuf(cur, []byte{byte(len(top.key))}) {
			return true, nil
		}
		top.stage = 1
		top.started = false

		return false, nil
	}

	if top.stage == 1 {
		if s.writeBorrow(cur, []byte(top.key)) {
			return true, nil
		}
		top.stage = 2
		top.started = false

		return false, nil
	}

	*top = frame{kind: kValue, value: top.value}

	return false, nil
}

// stepDataHead writes an frps Data block's tag+length head (using the
// non-standard frps length-field mapping), then its payload bytes.
func (s *Serializer) stepDataHead(cur *[]byte) (bool, error) {
	top := s.top()

	if top.stage == 0 {
		info, octets := wire.FrpsDataLenField(len(top.data))
		head := make([]byte, 1+octets)
		head[0] = wire.MakeTag(wire.TypeFrpsData, info)
		wire.PutUint(head[1:], uint64(len(top.data)), octets)
		if s.writeBuf(cur, head) {
			return true, nil
		}
		top.stage = 1
		top.started = false

		return false, nil
	}

	if s.writeBorrow(cur, top.data) {
		return true, nil
	}
	s.pop()

	return false, nil
}

// encodeInt picks the tag type and payload width for n under s.version:
// plain magnitude for 1.0 (1..4 octets, negative values rejected),
// PosInt8/NegInt8 with sign-magnitude for 2.x, and zigzagged TypeInt for
// 3.0.
func (s *Serializer) encodeInt(n int64) ([]byte, error) {
	switch {
	case s.version.IsV10():
		if n < 0 {
			return nil, errs.ErrNegativeInt10
		}
		octets := wire.Octets(uint64(n))
		if octets > wire.MaxLengthOctets(s.version) {
			return nil, errs.ErrInvalidLengthOctets
		}
		buf := make([]byte, 1+octets)
		buf[0] = wire.MakeTag(wire.TypeInt, wire.OctetsField(s.version, octets))
		wire.PutUint(buf[1:], uint64(n), octets)

		return buf, nil

	case s.version.IsV30():
		u := wire.ZigZagEncode(n)
		octets := wire.Octets(u)
		buf := make([]byte, 1+octets)
		buf[0] = wire.MakeTag(wire.TypeInt, wire.OctetsField(s.version, octets))
		wire.PutUint(buf[1:], u, octets)

		return buf, nil

	default: // 2.x
		typ := wire.TypePosInt8
		mag := uint64(n)
		if n < 0 {
			typ = wire.TypeNegInt8
			mag = uint64(-n)
		}
		octets := wire.Octets(mag)
		buf := make([]byte, 1+octets)
		buf[0] = wire.MakeTag(typ, wire.OctetsField(s.version, octets))
		wire.PutUint(buf[1:], mag, octets)

		return buf, nil
	}
}
