package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastrpc-go/fastrpc/errs"
	"github.com/fastrpc-go/fastrpc/serialize"
	"github.com/fastrpc-go/fastrpc/token"
	"github.com/fastrpc-go/fastrpc/value"
	"github.com/fastrpc-go/fastrpc/wire"
)

func encode(t *testing.T, v value.Value) []byte {
	t.Helper()

	s := serialize.New(serialize.WithVersion(wire.Version30))
	var out []byte
	buf := make([]byte, 3)
	for {
		n, err := s.WriteResponse(buf, v)
		require.NoError(t, err)
		out = append(out, buf[:n]...)
		if s.Done() {
			return out
		}
	}
}

func TestBuilder_RoundTripsValueTreeViaTokenizer(t *testing.T) {
	v := value.Struc(map[string]value.Value{
		"name": value.Str("alice"),
		"tags": value.Arr([]value.Value{value.Str("a"), value.Str("b")}),
	})
	data := encode(t, v)

	tok := token.New()
	b := value.NewBuilder()
	_, consumed := tok.Parse(data, b)
	require.Equal(t, len(data), consumed)
	require.NoError(t, tok.Err())
	require.NoError(t, tok.Close())
	require.NoError(t, b.Err())
	require.Equal(t, value.StatusResponse, b.Status())
	require.True(t, v.Equal(b.Message().Params[0]))
}

func TestBuilder_DuplicateStructKey_Detected(t *testing.T) {
	// Hand-splice wire bytes for a v3.0 Response struct with a repeated key
	// "a", since the Value API cannot itself construct a duplicate-key
	// struct (Go maps dedupe on assignment).
	header := []byte{wire.MagicByte0, wire.MagicByte1, 3, 0}
	body := []byte{
		wire.MakeTag(wire.TypeResponse, 0),
		wire.MakeTag(wire.TypeStruct, 0), // count=2, 1 length octet
		2,
		1, 'a', // struct key "a": a raw 1-byte length + bytes, no type tag
		wire.MakeTag(wire.TypeInt, 0), 0x02, // Int(1) zigzag
		1, 'a',
		wire.MakeTag(wire.TypeInt, 0), 0x04, // Int(2) zigzag
	}
	data := append(header, body...)

	tok := token.New()
	b := value.NewBuilder()
	tok.Parse(data, b)
	require.Error(t, tok.Err())
	require.ErrorIs(t, b.Err(), errs.ErrDuplicateKey)
}

func TestBuilder_InvalidUTF8String_Rejected(t *testing.T) {
	header := []byte{wire.MagicByte0, wire.MagicByte1, 3, 0}
	body := []byte{
		wire.MakeTag(wire.TypeResponse, 0),
		wire.MakeTag(wire.TypeString, 0), 1, 0xFF,
	}
	data := append(header, body...)

	tok := token.New()
	b := value.NewBuilder()
	tok.Parse(data, b)
	require.ErrorIs(t, b.Err(), errs.ErrInvalidUTF8String)
}
