package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/serialize"
	"github.com/fastrpc-go/fastrpc/token"
	"github.com/fastrpc-go/fastrpc/value"
	"github.com/fastrpc-go/fastrpc/wire"
)

// decodeAllSplits feeds data to a fresh Tokenizer for every split into N
// consecutive chunks, N = 1 (single chunk) through N = len(data) (one byte
// per call), and asserts every split reaches the same successful outcome.
func decodeAllSplits(t *testing.T, data []byte, opts ...token.Option) *value.Builder {
	t.Helper()

	var last *value.Builder
	for n := 1; n <= len(data); n++ {
		tok := token.New(opts...)
		b := value.NewBuilder()

		chunks := splitInto(data, n)
		for _, c := range chunks {
			_, consumed := tok.Parse(c, b)
			require.Equal(t, len(c), consumed, "chunking n=%d did not consume full chunk", n)
			if tok.Err() != nil {
				break
			}
		}
		if tok.Err() == nil {
			require.NoError(t, tok.Close())
		}
		require.NoError(t, b.Err(), "chunking n=%d", n)

		last = b
	}

	return last
}

// splitInto splits data into n roughly-equal consecutive chunks (n=len(data)
// yields one byte per chunk).
func splitInto(data []byte, n int) [][]byte {
	if n <= 1 {
		return [][]byte{data}
	}
	if n >= len(data) {
		out := make([][]byte, len(data))
		for i, b := range data {
			out[i] = []byte{b}
		}

		return out
	}

	size := (len(data) + n - 1) / n
	var out [][]byte
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[i:end])
	}

	return out
}

func TestTokenizer_SimpleCall_AllChunkings(t *testing.T) {
	// server.stat(1, 2).
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x68,
		0x0B, 's', 'e', 'r', 'v', 'e', 'r', '.', 's', 't', 'a', 't',
		0x08, 0x02,
		0x08, 0x04,
	}

	b := decodeAllSplits(t, data)
	require.Equal(t, value.StatusCall, b.Status())
	require.Equal(t, "server.stat(1, 2)", b.Message().String())
}

func TestTokenizer_NestedArrayResponse(t *testing.T) {
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x70,
		0x58, 0x02, 0x08, 0x02, 0x58, 0x02, 0x08, 0x04, 0x08, 0x06,
	}

	b := decodeAllSplits(t, data)
	require.Equal(t, value.StatusResponse, b.Status())
	require.Equal(t, "((1, (2, 3)))", b.Message().String())
}

func TestTokenizer_Fault(t *testing.T) {
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x78,
		0x09, 0xE8, 0x03, // code 500, zigzag 1000 (2 octets: info=1)
		0x20, 0x01, 'X',
	}

	b := decodeAllSplits(t, data)
	require.Equal(t, value.StatusFault, b.Status())
	require.Equal(t, `fault(500, "X")`, b.Message().String())
}

func TestTokenizer_V21_EmptyStringCall(t *testing.T) {
	data := []byte{
		0xCA, 0x11, 0x02, 0x01, 0x68,
		0x01, 'A',
		0x20, 0x00,
	}

	b := decodeAllSplits(t, data)
	require.Equal(t, value.StatusCall, b.Status())
	require.Equal(t, `A("")`, b.Message().String())
}

func TestTokenizer_BooleanTrueFalse(t *testing.T) {
	data := []byte{0xCA, 0x11, 0x03, 0x00, 0x70, 0x10}
	b := decodeAllSplits(t, data)
	require.Equal(t, "(false)", b.Message().String())

	data2 := []byte{0xCA, 0x11, 0x03, 0x00, 0x70, 0x11}
	b2 := decodeAllSplits(t, data2)
	require.Equal(t, "(true)", b2.Message().String())
}

func TestTokenizer_Null_V21(t *testing.T) {
	data := []byte{0xCA, 0x11, 0x02, 0x01, 0x70, 0x60}
	b := decodeAllSplits(t, data)
	require.Equal(t, "(null)", b.Message().String())
}

func TestTokenizer_Null_V10_Rejected(t *testing.T) {
	data := []byte{0xCA, 0x11, 0x01, 0x00, 0x70, 0x60}

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(data, b)

	require.Error(t, tok.Err())
	require.ErrorIs(t, tok.Err(), errs.ErrUnknownType)
}

func TestTokenizer_IntegerTags_V21(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		want int64
	}{
		// The plain Int tag predates PosInt8/NegInt8 and still decodes as a
		// positive magnitude under 2.x, with no zigzag applied.
		{"plain int", []byte{wire.MakeTag(wire.TypeInt, 0), 0x05}, 5},
		{"pos int8", []byte{wire.MakeTag(wire.TypePosInt8, 0), 0x05}, 5},
		{"neg int8", []byte{wire.MakeTag(wire.TypeNegInt8, 0), 0x05}, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := append([]byte{0xCA, 0x11, 0x02, 0x01, 0x70}, c.body...)
			b := decodeAllSplits(t, data)
			require.Equal(t, value.Int(c.want), b.Message().Params[0])
		})
	}
}

func TestTokenizer_DeprecatedInt8Tags_StillDecodable_V30(t *testing.T) {
	data := append([]byte{0xCA, 0x11, 0x03, 0x00, 0x70}, wire.MakeTag(wire.TypeNegInt8, 0), 0x07)
	b := decodeAllSplits(t, data)
	require.Equal(t, value.Int(-7), b.Message().Params[0])
}

func TestTokenizer_Int8Tags_RejectedIn10(t *testing.T) {
	data := append([]byte{0xCA, 0x11, 0x01, 0x00, 0x70}, wire.MakeTag(wire.TypePosInt8, 0), 0x07)

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(data, b)

	require.ErrorIs(t, tok.Err(), errs.ErrUnknownType)
}

func TestTokenizer_MinimalPositiveInt_V30(t *testing.T) {
	data := []byte{0xCA, 0x11, 0x03, 0x00, 0x70, 0x08, 0x00}
	b := decodeAllSplits(t, data)
	require.Equal(t, value.Int(0), b.Message().Params[0])
}

func TestTokenizer_IntExtremes_V30(t *testing.T) {
	for _, n := range []int64{1<<63 - 1, -(1 << 63)} {
		s := serialize.New(serialize.WithVersion(wire.Version30))
		data, err := encodeResponseValue(t, s, value.Int(n))
		require.NoError(t, err)
		require.Equal(t, 9, len(data)-wire.HeaderLength-1, "n=%d must encode in 9 bytes", n)

		b := decodeAllSplits(t, data)
		require.Equal(t, value.Int(n), b.Message().Params[0])
	}
}

func TestTokenizer_EmptyCollections(t *testing.T) {
	s := serialize.New(serialize.WithVersion(wire.Version30))

	data, err := encodeResponseValue(t, s, value.Arr(nil))
	require.NoError(t, err)
	b := decodeAllSplits(t, data)
	require.True(t, b.Message().Params[0].Equal(value.Arr(nil)))

	s.Reset()
	data2, err := encodeResponseValue(t, s, value.Struc(nil))
	require.NoError(t, err)
	b2 := decodeAllSplits(t, data2)
	require.True(t, b2.Message().Params[0].Equal(value.Struc(nil)))
}

func TestTokenizer_OversizeString_RejectedBeforePayload(t *testing.T) {
	// declare a length field > 1 GiB (4-byte width) but supply no payload.
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x70,
		wire.MakeTag(wire.TypeString, 3), // octets field 3 -> 4 octets
		0x01, 0x00, 0x00, 0x40, // 0x40000001 > 1<<30
	}

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(data, b)

	require.ErrorIs(t, tok.Err(), errs.ErrTooLargeString)
}

func TestTokenizer_TrailingBytes(t *testing.T) {
	data := []byte{0xCA, 0x11, 0x03, 0x00, 0x70, 0x08, 0x00}

	tok := token.New()
	b := value.NewBuilder()
	more, consumed := tok.Parse(data, b)
	require.False(t, more)
	require.Equal(t, len(data), consumed)
	require.NoError(t, tok.Err())

	_, _ = tok.Parse([]byte{0xFF}, b)
	require.ErrorIs(t, tok.Err(), errs.ErrDataAfterEnd)
}

func TestTokenizer_PrematureEnd(t *testing.T) {
	// A Response whose string value declares 4 payload bytes but only ever
	// receives 2: Close mid-field is a premature EOF.
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x70,
		0x20, 0x04, 'a', 'b',
	}

	tok := token.New()
	b := value.NewBuilder()
	more, consumed := tok.Parse(data, b)
	require.True(t, more)
	require.Equal(t, len(data), consumed)

	require.ErrorIs(t, tok.Close(), errs.ErrUnexpectedDataEnd)
}

func TestTokenizer_FaultShape_TooManyValues(t *testing.T) {
	// The wire format has no terminator for a completed Fault: the third
	// value only becomes an error once the tokenizer is handed more bytes
	// after the two-value shape has already drained.
	complete := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x78,
		0x08, 0x00, // code 0
		0x20, 0x00, // message ""
	}
	extra := []byte{0x08, 0x00} // a disallowed third value

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(complete, b)
	require.NoError(t, tok.Err())

	_, _ = tok.Parse(extra, b)
	require.ErrorIs(t, tok.Err(), errs.ErrInvalidFault)
}

func TestTokenizer_FaultShape_WrongFirstType(t *testing.T) {
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x78,
		0x20, 0x00, // String instead of Int for the code
		0x20, 0x00,
	}

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(data, b)

	require.ErrorIs(t, tok.Err(), errs.ErrInvalidFault)
}

func TestTokenizer_ChunkedString_ByteAtATime(t *testing.T) {
	payload := make([]byte, 1000)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}

	s := serialize.New(serialize.WithVersion(wire.Version30))
	data, err := encodeResponseValue(t, s, value.Str(string(payload)))
	require.NoError(t, err)

	tok := token.New()
	rec := &recordingCallback{Builder: *value.NewBuilder()}

	for i := 0; i < len(data); i++ {
		_, _ = tok.Parse(data[i:i+1], rec)
		require.NoError(t, tok.Err())
	}
	require.NoError(t, tok.Close())

	require.Equal(t, 1000, rec.stringBeginLen)
	require.Equal(t, 1000, rec.stringDataCalls)
	require.True(t, rec.valueEndAfterData)
}

// recordingCallback wraps value.Builder to additionally count StringBegin /
// StringData invocation order for the chunked-string boundary test.
type recordingCallback struct {
	value.Builder

	stringBeginLen    int
	stringDataCalls   int
	valueEndAfterData bool
}

func (r *recordingCallback) StringBegin(length int) bool {
	r.stringBeginLen = length

	return r.Builder.StringBegin(length)
}

func (r *recordingCallback) StringData(chunk []byte, totalLen int) bool {
	r.stringDataCalls++

	return r.Builder.StringData(chunk, totalLen)
}

func (r *recordingCallback) ValueEnd() bool {
	if r.stringDataCalls == r.stringBeginLen {
		r.valueEndAfterData = true
	}

	return r.Builder.ValueEnd()
}

func TestTokenizer_CallParams_OpenEnded_NoTrailingDemand(t *testing.T) {
	// A Call's parameter list has no wire-encoded terminator: after the last
	// param the tokenizer must not demand more input, only Close() finalizes.
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x68,
		0x01, 'A',
		0x08, 0x02,
	}

	tok := token.New()
	b := value.NewBuilder()
	more, consumed := tok.Parse(data, b)
	require.Equal(t, len(data), consumed)
	require.True(t, more, "tokenizer should still be open for more params until Close")

	require.NoError(t, tok.Close())
	require.NoError(t, b.Err())
	require.Equal(t, "A(1)", b.Message().String())
}

func TestTokenizer_Reset_ReusableAcrossMessages(t *testing.T) {
	tok := token.New()
	data := []byte{0xCA, 0x11, 0x03, 0x00, 0x70, 0x08, 0x00}

	b1 := value.NewBuilder()
	_, _ = tok.Parse(data, b1)
	require.NoError(t, tok.Close())
	require.NoError(t, b1.Err())

	tok.Reset()

	b2 := value.NewBuilder()
	_, _ = tok.Parse(data, b2)
	require.NoError(t, tok.Close())
	require.NoError(t, b2.Err())
	require.Equal(t, b1.Message().String(), b2.Message().String())
}

func TestTokenizer_DuplicateStructKey(t *testing.T) {
	s := serialize.New(serialize.WithVersion(wire.Version30))
	v := value.Struc(map[string]value.Value{"a": value.Int(1)})
	data, err := encodeResponseValue(t, s, v)
	require.NoError(t, err)

	// Flip the struct to declare 2 items but repeat the same key bytes, by
	// hand-splicing: find the struct head (0x50 0x01) and duplicate the
	// key+value pair that follows, bumping the count to 2.
	headerLen := wire.HeaderLength + 1 // magic+version+envelope tag
	structHeadIdx := headerLen
	require.Equal(t, wire.TypeStruct, wire.DecodeTag(data[structHeadIdx]).Type)

	rest := data[structHeadIdx+2:] // skip struct tag + 1-byte count
	doubled := append([]byte{}, data[:structHeadIdx]...)
	doubled = append(doubled, wire.MakeTag(wire.TypeStruct, 0), 0x02)
	doubled = append(doubled, rest...)
	doubled = append(doubled, rest...)

	tok := token.New()
	b := value.NewBuilder()
	_, _ = tok.Parse(doubled, b)

	require.Error(t, b.Err())
	require.ErrorIs(t, b.Err(), errs.ErrDuplicateKey)
}

func TestTokenizer_TooDeep(t *testing.T) {
	s := serialize.New(serialize.WithVersion(wire.Version30))

	v := value.Int(0)
	for i := 0; i < 10; i++ {
		v = value.Arr([]value.Value{v})
	}
	data, err := encodeResponseValue(t, s, v)
	require.NoError(t, err)

	tok := token.New(token.WithMaxDepth(5))
	b := value.NewBuilder()
	_, _ = tok.Parse(data, b)

	require.ErrorIs(t, tok.Err(), errs.ErrTooDeep)
}

func TestTokenizer_FrpsMode_DataBeforeAndBetweenValues(t *testing.T) {
	data := []byte{
		0xCA, 0x11, 0x03, 0x00, 0x70,
		0x01, 0x02, 0x00, 'h', 'i', // frps Data "hi" (info=1, 2-byte length=2)
		0x08, 0x2A, // the response value, Int(21)
		0x02, 0x01, 0x00, 0x00, 0x00, 'x', // frps Data "x" after the value (info=2, 4-byte length=1)
	}

	tok := token.New(token.WithFrps())
	b := value.NewBuilder()
	more, consumed := tok.Parse(data, b)
	require.Equal(t, len(data), consumed)
	require.True(t, more)

	require.NoError(t, tok.Close())
	require.NoError(t, b.Err())
	require.Equal(t, "hix", string(b.Data))
	require.Equal(t, value.Int(21), b.Message().Params[0])
}

// encodeResponseValue is a test helper that drains a Serializer's
// WriteResponse call into a single growable buffer.
func encodeResponseValue(t *testing.T, s *serialize.Serializer, v value.Value) ([]byte, error) {
	t.Helper()

	var out []byte
	buf := make([]byte, 64)
	for {
		n, err := s.WriteResponse(buf, v)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
		if s.Done() {
			return out, nil
		}
	}
}
