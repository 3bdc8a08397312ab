// Package wire implements the FastRPC binary wire primitives: the magic
// header, tag byte layout, variable-length integer and zigzag encoding, the
// packed date-time field, and the length-prefix "head" helper shared by
// strings, binaries, arrays and structs.
//
// This package has no notion of chunked I/O or state machines — it only
// knows how to lay values out into, or read them back out of, a single
// contiguous byte slice. The token and serialize packages build the
// chunk-resumable state machines on top of these primitives.
//
// # Protocol revisions
//
// Three revisions are recognized: 1.0, 2.1 and 3.0. They share the same tag
// layout (TTTTTNNN: a 5-bit type discriminator in the high bits, a 3-bit
// "additional info" field in the low bits) but disagree on:
//
//   - how many octets the additional-info field can address for a
//     length/count/integer payload (1.0: 1-4, additional info is the octet
//     count itself; 2.1/3.0: 1-8, additional info is octet count minus one)
//   - how signed integers are carried (1.0: positive-only Int tag; 2.1:
//     PosInt8/NegInt8 tags carrying an absolute value; 3.0: a single Int tag
//     carrying a zigzag-encoded value)
//   - whether Null is a legal tag (2.1 and 3.0 only)
//   - the width of the date-time's Unix timestamp field (32 bits for 1.0/2.1,
//     64 bits for 3.0)
package wire
