package wire

// MaxLengthOctets returns the widest length/count field the revision
// permits: 4 for 1.0 (additional-info is the literal octet count, 3 bits can
// only reach 7 but 1.0 restricts it to 1..4), 8 for 2.x/3.0 (additional-info
// is octets-1, so 3 bits reach the full 1..8 range).
func MaxLengthOctets(v Version) int {
	if v.IsV10() {
		return 4
	}

	return 8
}

// HeadLen returns the total number of bytes (tag byte + length octets)
// WriteHead will emit for a composite of the given length under revision v.
func HeadLen(length int, v Version) int {
	return 1 + Octets(uint64(length))
}

// WriteHead writes one tag byte (typ with additional-info set to the
// octets-minus-one/octets-literal length width) followed by the length
// itself as that many little-endian bytes. dst must be at least
// HeadLen(length, v) bytes. It returns the number of bytes written.
//
// This is the "head helper" shared by strings, binaries, arrays and
// structs: writing a length-prefixed composite always looks the same,
// only the type discriminator differs.
func WriteHead(dst []byte, typ Type, length int, v Version) int {
	octets := Octets(uint64(length))
	dst[0] = MakeTag(typ, OctetsField(v, octets))
	PutUint(dst[1:], uint64(length), octets)

	return 1 + octets
}
