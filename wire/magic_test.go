package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastrpc-go/fastrpc/errs"
)

func TestEncodeDecodeHeader_RoundTrip(t *testing.T) {
	for _, v := range []Version{Version10, Version21, Version30} {
		buf := make([]byte, HeaderLength)
		EncodeHeader(buf, v)

		got, err := DecodeHeader(buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestDecodeHeader_InvalidMagic(t *testing.T) {
	buf := []byte{0xCA, 0x10, 3, 0}
	_, err := DecodeHeader(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestDecodeHeader_UnsupportedVersion(t *testing.T) {
	buf := []byte{0xCA, 0x11, 9, 9}
	_, err := DecodeHeader(buf)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestDecodeHeader_AllSupportedPairs(t *testing.T) {
	pairs := []Version{{1, 0}, {2, 0}, {2, 1}, {3, 0}}
	for _, v := range pairs {
		buf := []byte{MagicByte0, MagicByte1, v.Major, v.Minor}
		got, err := DecodeHeader(buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}
