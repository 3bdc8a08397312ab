package wire

import "github.com/fastrpc-go/fastrpc/errs"

// EncodeHeader writes the 4-byte magic+version header into dst, which must
// have length >= HeaderLength.
func EncodeHeader(dst []byte, v Version) {
	dst[0] = MagicByte0
	dst[1] = MagicByte1
	dst[2] = v.Major
	dst[3] = v.Minor
}

// DecodeHeader parses the 4-byte magic+version header from src, which must
// have length >= HeaderLength. A revision that Version.Supported rejects is
// returned together with errs.ErrUnsupportedVersion.
func DecodeHeader(src []byte) (Version, error) {
	if src[0] != MagicByte0 || src[1] != MagicByte1 {
		return Version{}, errs.ErrInvalidMagic
	}

	v := Version{Major: src[2], Minor: src[3]}
	if !v.Supported() {
		return v, errs.ErrUnsupportedVersion
	}

	return v, nil
}
