package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(-42), "-42"},
		{Double(1.5), "1.5"},
		{Str("hi"), `"hi"`},
		{Binary([]byte{0xDE, 0xAD}), "0xdead"},
		{Arr([]Value{Int(1), Str("a")}), `(1, "a")`},
		{Struc(map[string]Value{"b": Int(2), "a": Int(1)}), "{a: 1, b: 2}"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.v.String())
	}
}

func TestValue_String_NestedArray(t *testing.T) {
	v := Arr([]Value{Arr([]Value{Int(1), Int(2)}), Int(3)})
	require.Equal(t, "((1, 2), 3)", v.String())
}

func TestMessage_String(t *testing.T) {
	require.Equal(t, "add(1, 2)", Call("add", Int(1), Int(2)).String())
	require.Equal(t, "noop()", Call("noop").String())
	require.Equal(t, `(1)`, Response(Int(1)).String())
	require.Equal(t, `fault(7, "bad")`, Fault(7, "bad").String())
}

func TestMessage_String_MalformedResponseParamCount(t *testing.T) {
	m := Message{Kind: EnvelopeResponse, Params: nil}
	require.Equal(t, "response()", m.String())
}
