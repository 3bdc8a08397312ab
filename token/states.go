package token

import (
	"math"

	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/wire"
)

func (t *Tokenizer) stepInit(cur *[]byte) (bool, error) {
	if !t.st.fill(cur) {
		return true, nil
	}

	v, err := wire.DecodeHeader(t.st.bytes())
	if err != nil {
		return false, err
	}
	t.version = v

	if err := t.emit(t.cb.Version(v.Major, v.Minor)); err != nil {
		return false, err
	}

	*t.top() = frame{kind: kMessageType}

	return false, nil
}

func (t *Tokenizer) stepMessageType(cur *[]byte) (bool, error) {
	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}
	tag := wire.DecodeTag(b)
	t.envelope = tag.Type
	t.haveEnvelope = true

	switch tag.Type {
	case wire.TypeCall:
		*t.top() = frame{kind: kCallNameLen}
	case wire.TypeResponse:
		if err := t.emit(t.cb.Response()); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kResponseBody}
	case wire.TypeFault:
		if err := t.emit(t.cb.Fault()); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kFaultBody}
	default:
		return false, errs.ErrUnknownType
	}

	return false, nil
}

func (t *Tokenizer) stepCallNameLen(cur *[]byte) (bool, error) {
	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}
	length := int(b)
	if length == 0 {
		return false, errs.ErrEmptyMethodName
	}
	*t.top() = frame{kind: kCallName, remaining: length, total: length}

	return false, nil
}

func (t *Tokenizer) stepCallName(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		*t.top() = frame{kind: kCallParams}

		return false, nil
	}
	if len(*cur) == 0 {
		return true, nil
	}

	n := min(top.remaining, len(*cur))
	slice := (*cur)[:n]
	err := t.emit(t.cb.Call(slice, top.total))
	*cur = (*cur)[n:]
	top.remaining -= n

	return false, err
}

// stepCallParams waits for the next parameter's tag byte, never demanding
// more input if one is not immediately available: a Call's argument list has
// no wire-encoded count or terminator, so the only signal that it is
// finished is the caller eventually invoking Close.
func (t *Tokenizer) stepCallParams(cur *[]byte) (bool, error) {
	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}
	tag := wire.DecodeTag(b)

	return false, t.startValue(tag)
}

// startValue pushes a fresh child frame and immediately dispatches tag into
// it. Used wherever a container (call params, fault body, a frps response
// body) reads a value's tag itself rather than letting kValueTag read it.
func (t *Tokenizer) startValue(tag wire.Tag) error {
	if err := t.push(frame{}); err != nil {
		return err
	}

	return t.dispatchTag(tag)
}

func (t *Tokenizer) stepValueTag(cur *[]byte) (bool, error) {
	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}

	return false, t.dispatchTag(wire.DecodeTag(b))
}

// dispatchTag turns a just-read tag byte into the frame on top of the stack:
// it morphs that frame in place into whatever continuation the tag implies,
// firing any callback events that require no further bytes (Null, Bool)
// and popping the frame immediately in that case.
func (t *Tokenizer) dispatchTag(tag wire.Tag) error {
	switch tag.Type {
	case wire.TypeNull:
		if !t.version.AllowsNull() {
			return errs.ErrUnknownType
		}
		if err := t.emit(t.cb.Null()); err != nil {
			return err
		}
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return err
		}
		t.pop()

		return nil

	case wire.TypeBool:
		if tag.Info > 1 {
			return errs.ErrInvalidBoolValue
		}
		if err := t.emit(t.cb.Boolean(tag.Info == 1)); err != nil {
			return err
		}
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return err
		}
		t.pop()

		return nil

	case wire.TypeInt:
		octets, err := t.lenOctets(tag.Info)
		if err != nil {
			return err
		}
		mode := intPositive
		if t.version.IsV30() {
			mode = intZigzag
		}
		*t.top() = frame{kind: kIntPayload, octets: octets, mode: mode}
		t.st.reset(octets)

		return nil

	case wire.TypePosInt8, wire.TypeNegInt8:
		if t.version.IsV10() {
			return errs.ErrUnknownType
		}
		octets := int(tag.Info) + 1
		mode := intPositive
		if tag.Type == wire.TypeNegInt8 {
			mode = intNegative
		}
		*t.top() = frame{kind: kIntPayload, octets: octets, mode: mode}
		t.st.reset(octets)

		return nil

	case wire.TypeDouble:
		*t.top() = frame{kind: kDoublePayload}
		t.st.reset(8)

		return nil

	case wire.TypeDateTime:
		n := wire.DateTimeLen(t.version)
		*t.top() = frame{kind: kDateTimePayload, octets: n}
		t.st.reset(n)

		return nil

	case wire.TypeString, wire.TypeBinary, wire.TypeArray, wire.TypeStruct:
		octets, err := t.lenOctets(tag.Info)
		if err != nil {
			return err
		}
		*t.top() = frame{kind: kLength, purpose: purposeFor(tag.Type), octets: octets}
		t.st.reset(octets)

		return nil

	default:
		return errs.ErrUnknownType
	}
}

func purposeFor(tt wire.Type) purpose {
	switch tt {
	case wire.TypeString:
		return purposeString
	case wire.TypeBinary:
		return purposeBinary
	case wire.TypeArray:
		return purposeArray
	default:
		return purposeStruct
	}
}

func isIntLikeType(tt wire.Type) bool {
	return tt == wire.TypeInt || tt == wire.TypePosInt8 || tt == wire.TypeNegInt8
}

// lenOctets recovers the byte width of a length/integer payload from a
// tag's additional-info field, rejecting widths protocol 1.0 does not
// permit (1.0's additional-info is the literal octet count, not
// octets-minus-one, and is restricted to 1..4).
func (t *Tokenizer) lenOctets(info uint8) (int, error) {
	octets := wire.OctetsFromField(t.version, info)
	if t.version.IsV10() && (octets < 1 || octets > 4) {
		return 0, errs.ErrInvalidLengthOctets
	}

	return octets, nil
}

func (t *Tokenizer) stepIntPayload(cur *[]byte) (bool, error) {
	top := t.top()
	if !t.st.fill(cur) {
		return true, nil
	}
	raw := wire.GetUint(t.st.bytes(), top.octets)

	var val int64
	switch top.mode {
	case intNegative:
		val = -int64(raw) //nolint:gosec
	case intZigzag:
		val = wire.ZigZagDecode(raw)
	default:
		val = int64(raw) //nolint:gosec
	}

	if err := t.emit(t.cb.Integer(val)); err != nil {
		return false, err
	}
	if err := t.emit(t.cb.ValueEnd()); err != nil {
		return false, err
	}
	t.pop()

	return false, nil
}

func (t *Tokenizer) stepDoublePayload(cur *[]byte) (bool, error) {
	if !t.st.fill(cur) {
		return true, nil
	}
	val := math.Float64frombits(wire.GetUint(t.st.bytes(), 8))

	if err := t.emit(t.cb.DoubleNumber(val)); err != nil {
		return false, err
	}
	if err := t.emit(t.cb.ValueEnd()); err != nil {
		return false, err
	}
	t.pop()

	return false, nil
}

func (t *Tokenizer) stepDateTimePayload(cur *[]byte) (bool, error) {
	if !t.st.fill(cur) {
		return true, nil
	}
	dt := wire.DecodeDateTime(t.st.bytes(), t.version)

	if err := t.emit(t.cb.DateTimeValue(dt)); err != nil {
		return false, err
	}
	if err := t.emit(t.cb.ValueEnd()); err != nil {
		return false, err
	}
	t.pop()

	return false, nil
}

func (t *Tokenizer) stepLength(cur *[]byte) (bool, error) {
	top := t.top()
	if !t.st.fill(cur) {
		return true, nil
	}
	length := int(wire.GetUint(t.st.bytes(), top.octets))
	purp := top.purpose

	switch purp {
	case purposeString:
		if length > wire.MaxStringLength {
			return false, errs.ErrTooLargeString
		}
		if err := t.emit(t.cb.StringBegin(length)); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kStrData, remaining: length, total: length}

	case purposeBinary:
		if length > wire.MaxBinaryLength {
			return false, errs.ErrTooLargeBinary
		}
		if err := t.emit(t.cb.BinaryBegin(length)); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kBinData, remaining: length, total: length}

	case purposeArray:
		if length > wire.MaxArrayLength {
			return false, errs.ErrTooLargeArray
		}
		if err := t.emit(t.cb.ArrayBegin(length)); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kArrayItems, remaining: length}

	case purposeStruct:
		if length > wire.MaxStructLength {
			return false, errs.ErrTooLargeStruct
		}
		if err := t.emit(t.cb.StructBegin(length)); err != nil {
			return false, err
		}
		*t.top() = frame{kind: kStructItems, remaining: length}
	}

	return false, nil
}

func (t *Tokenizer) stepStrData(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return false, err
		}
		t.pop()

		return false, nil
	}
	if len(*cur) == 0 {
		return true, nil
	}

	n := min(top.remaining, len(*cur))
	slice := (*cur)[:n]
	err := t.emit(t.cb.StringData(slice, top.total))
	*cur = (*cur)[n:]
	top.remaining -= n

	return false, err
}

func (t *Tokenizer) stepBinData(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return false, err
		}
		t.pop()

		return false, nil
	}
	if len(*cur) == 0 {
		return true, nil
	}

	n := min(top.remaining, len(*cur))
	slice := (*cur)[:n]
	err := t.emit(t.cb.BinaryData(slice, top.total))
	*cur = (*cur)[n:]
	top.remaining -= n

	return false, err
}

func (t *Tokenizer) stepArrayItems(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return false, err
		}
		t.pop()

		return false, nil
	}
	top.remaining--

	return false, t.push(frame{kind: kValueTag})
}

func (t *Tokenizer) stepStructItems(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		if err := t.emit(t.cb.ValueEnd()); err != nil {
			return false, err
		}
		t.pop()

		return false, nil
	}
	top.remaining--

	return false, t.push(frame{kind: kStructKeyLen})
}

func (t *Tokenizer) stepStructKeyLen(cur *[]byte) (bool, error) {
	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}
	length := int(b)
	if length == 0 {
		return false, errs.ErrEmptyKey
	}
	*t.top() = frame{kind: kStructKeyData, remaining: length, total: length}

	return false, nil
}

func (t *Tokenizer) stepStructKeyData(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		*t.top() = frame{kind: kValueTag}

		return false, nil
	}
	if len(*cur) == 0 {
		return true, nil
	}

	n := min(top.remaining, len(*cur))
	slice := (*cur)[:n]
	err := t.emit(t.cb.StructKey(slice, top.total))
	*cur = (*cur)[n:]
	top.remaining -= n

	return false, err
}

// stepResponseBody handles both plain and frps Response envelopes. In plain
// mode it requires exactly one value then finishes (Finish forbids trailing
// bytes). In frps mode it accepts any interleaving of Data chunks with the
// single required value and only ever finishes via Close, matching the
// open-ended Call parameter list.
func (t *Tokenizer) stepResponseBody(cur *[]byte) (bool, error) {
	top := t.top()

	if !t.allowFrps {
		if top.started {
			t.pop()

			return false, nil
		}
		b, ok := readByte(cur)
		if !ok {
			return true, nil
		}
		tag := wire.DecodeTag(b)
		if tag.Type == wire.TypeFrpsData {
			return false, errs.ErrUnexpectedType
		}
		top.started = true

		return false, t.startValue(tag)
	}

	b, ok := readByte(cur)
	if !ok {
		return true, nil
	}
	tag := wire.DecodeTag(b)

	if tag.Type == wire.TypeFrpsData {
		return false, t.enterDataLen(tag.Info)
	}
	if top.started {
		return false, errs.ErrDataAfterEnd
	}
	top.started = true

	return false, t.startValue(tag)
}

// stepFaultBody enforces the fixed Fault shape: exactly one Int (the code)
// then exactly one Str (the message). Because the arity and type are
// enforced here, before the value is parsed, a wrong-shaped Fault is
// reported as ErrInvalidFault rather than as whatever generic type error the
// mis-declared value would otherwise trigger.
func (t *Tokenizer) stepFaultBody(cur *[]byte) (bool, error) {
	top := t.top()

	switch top.stage {
	case 0:
		b, ok := readByte(cur)
		if !ok {
			return true, nil
		}
		tag := wire.DecodeTag(b)
		if !isIntLikeType(tag.Type) {
			return false, errs.ErrInvalidFault
		}
		top.stage = 1

		return false, t.startValue(tag)

	case 1:
		b, ok := readByte(cur)
		if !ok {
			return true, nil
		}
		tag := wire.DecodeTag(b)
		if tag.Type != wire.TypeString {
			return false, errs.ErrInvalidFault
		}
		top.stage = 2

		return false, t.startValue(tag)

	default:
		t.pop()

		return false, nil
	}
}

// enterDataLen pushes the frame that reads an frps Data block's
// non-standard length field (additional-info 0/1/2/4 map to 0/2/4/8
// length bytes; other values are invalid) and, if the length is already
// fully known (the zero-length case), goes straight to kDataBody.
func (t *Tokenizer) enterDataLen(info uint8) error {
	octets, err := wire.FrpsDataLenOctets(info)
	if err != nil {
		return err
	}
	if octets == 0 {
		return t.push(frame{kind: kDataBody})
	}
	if err := t.push(frame{kind: kDataLen, octets: octets}); err != nil {
		return err
	}
	t.st.reset(octets)

	return nil
}

func (t *Tokenizer) stepDataLen(cur *[]byte) (bool, error) {
	top := t.top()
	if !t.st.fill(cur) {
		return true, nil
	}
	length := int(wire.GetUint(t.st.bytes(), top.octets))
	if length > wire.MaxBinaryLength {
		return false, errs.ErrTooLargeBinary
	}
	*t.top() = frame{kind: kDataBody, remaining: length, total: length}

	return false, nil
}

// stepDataBody delivers an frps Data block's payload. Unlike string/binary
// payloads it is not wrapped in ValueEnd: a Data chunk is not a value.
func (t *Tokenizer) stepDataBody(cur *[]byte) (bool, error) {
	top := t.top()
	if top.remaining == 0 {
		t.pop()

		return false, nil
	}
	if len(*cur) == 0 {
		return true, nil
	}

	n := min(top.remaining, len(*cur))
	slice := (*cur)[:n]
	err := t.emit(t.cb.StreamData(slice))
	*cur = (*cur)[n:]
	top.remaining -= n

	return false, err
}
