package wire

import "github.com/fastrpc-go/fastrpc/errs"

// FrpsDataLenOctets decodes the non-standard additional-info mapping used by
// the frps Data tag (type 0b00000): unlike every other type, its
// additional-info nibble is not "octets minus one" but a small enumeration
// of the length-field width itself, so that a Data block's length can be
// written in exactly 0, 2, 4 or 8 bytes with no in-between widths.
func FrpsDataLenOctets(info uint8) (int, error) {
	switch info {
	case 0:
		return 0, nil
	case 1:
		return 2, nil
	case 2:
		return 4, nil
	case 4:
		return 8, nil
	default:
		return 0, errs.ErrInvalidLengthOctets
	}
}

// FrpsDataLenField is the inverse of FrpsDataLenOctets, used by the
// serializer to pick the additional-info nibble for a given data length.
func FrpsDataLenField(length int) (info uint8, octets int) {
	switch {
	case length == 0:
		return 0, 0
	case length <= 0xFFFF:
		return 1, 2
	case length <= 0xFFFFFFFF:
		return 2, 4
	default:
		return 4, 8
	}
}
