package wire

// ZigZagEncode maps a signed 64-bit integer to an unsigned one so that small
// magnitudes of either sign produce small unsigned values: 0->0, -1->1,
// 1->2, -2->3, 2->4, and so on.
//
// The left shift wraps instead of trapping at the i64 extremes (Go integer
// shifts never trap on overflow), and the right shift of n is an
// arithmetic shift (Go's >> on a signed type), which is exactly the
// all-ones-or-all-zeros mask the zigzag trick needs.
func ZigZagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// ZigZagDecode reverses ZigZagEncode: the low bit of u selects the sign, and
// the remaining bits hold the magnitude.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Octets returns the smallest number of little-endian bytes, 1..8, needed to
// hold u with all unused high bytes zero: the smallest width such that the
// suppressed high bytes are all zero.
func Octets(u uint64) int {
	n := 1
	for u >>= 8; u != 0; u >>= 8 {
		n++
	}

	return n
}

// PutUint puts the n least-significant bytes of u into dst in little-endian
// order. dst must have length >= n, and n must be in 1..8.
func PutUint(dst []byte, u uint64, n int) {
	for i := 0; i < n; i++ {
		dst[i] = byte(u)
		u >>= 8
	}
}

// GetUint reads n little-endian bytes from src, n in 1..8, and returns the
// reconstructed unsigned value.
func GetUint(src []byte, n int) uint64 {
	var u uint64
	for i := n - 1; i >= 0; i-- {
		u = (u << 8) | uint64(src[i])
	}

	return u
}

// OctetsField returns the wire-format "additional info" nibble that encodes
// a payload of the given octet width for the given protocol revision: the
// raw octet count for 1.0, or octets-1 for 2.x/3.0. It does not check the
// width against the 1.0 limit of 4 octets; see MaxLengthOctets.
func OctetsField(v Version, octets int) uint8 {
	if v.IsV10() {
		return uint8(octets)
	}

	return uint8(octets - 1)
}

// OctetsFromField recovers the octet width from an "additional info"
// nibble for the given protocol revision — the inverse of OctetsField.
func OctetsFromField(v Version, info uint8) int {
	if v.IsV10() {
		return int(info)
	}

	return int(info) + 1
}
