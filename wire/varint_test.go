package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZigZag_RoundTrip(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, 1000, -1000, 1 << 62, -(1 << 62)}
	for _, n := range cases {
		u := ZigZagEncode(n)
		require.Equal(t, n, ZigZagDecode(u), "n=%d", n)
	}
}

func TestZigZag_KnownValues(t *testing.T) {
	cases := map[int64]uint64{
		0:  0,
		-1: 1,
		1:  2,
		-2: 3,
		2:  4,
	}
	for n, want := range cases {
		require.Equal(t, want, ZigZagEncode(n), "n=%d", n)
	}
}

func TestZigZag_I64Extremes(t *testing.T) {
	const maxI64 = int64(1<<63 - 1)
	const minI64 = -maxI64 - 1

	require.Equal(t, uint64(1<<64-1), ZigZagEncode(minI64))
	require.Equal(t, uint64(1<<64-2), ZigZagEncode(maxI64))

	require.Equal(t, minI64, ZigZagDecode(ZigZagEncode(minI64)))
	require.Equal(t, maxI64, ZigZagDecode(ZigZagEncode(maxI64)))
	require.Equal(t, 8, Octets(ZigZagEncode(minI64)))
	require.Equal(t, 8, Octets(ZigZagEncode(maxI64)))
}

func TestOctets(t *testing.T) {
	cases := []struct {
		u    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{0xFF, 1},
		{0x100, 2},
		{0xFFFF, 2},
		{0x10000, 3},
		{0xFFFFFFFFFFFFFFFF, 8},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Octets(c.u), "u=%#x", c.u)
	}
}

func TestPutGetUint_RoundTrip(t *testing.T) {
	cases := []struct {
		u      uint64
		octets int
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{0xFFFFFFFF, 4},
		{0xFFFFFFFFFFFFFFFF, 8},
	}
	for _, c := range cases {
		buf := make([]byte, c.octets)
		PutUint(buf, c.u, c.octets)
		require.Equal(t, c.u, GetUint(buf, c.octets))
	}
}

func TestPutUint_LittleEndian(t *testing.T) {
	buf := make([]byte, 4)
	PutUint(buf, 0x04030201, 4)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestOctetsField_V30(t *testing.T) {
	require.Equal(t, uint8(0), OctetsField(Version30, 1))
	require.Equal(t, uint8(7), OctetsField(Version30, 8))
	require.Equal(t, 1, OctetsFromField(Version30, 0))
	require.Equal(t, 8, OctetsFromField(Version30, 7))
}

func TestOctetsField_V10(t *testing.T) {
	require.Equal(t, uint8(1), OctetsField(Version10, 1))
	require.Equal(t, uint8(4), OctetsField(Version10, 4))
	require.Equal(t, 1, OctetsFromField(Version10, 1))
	require.Equal(t, 4, OctetsFromField(Version10, 4))
}
