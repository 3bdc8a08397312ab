package token

// kind discriminates what a stack frame is currently doing. The tokenizer is
// an explicit-stack push-down automaton: the frame on top of the stack is
// the one Parse advances on each iteration, and composite frames (array,
// struct, struct-key, call-params, response/fault body) stay on the stack as
// the "return address" while a child frame handles a nested value, exactly
// mirroring the recursive-descent shape but without recursing the Go stack.
type kind uint8

const (
	kInit kind = iota
	kMessageType
	kCallNameLen
	kCallName
	kCallParams
	kValueTag // reads its own tag byte, then morphs into the matching payload kind
	kIntPayload
	kDoublePayload
	kDateTimePayload
	kLength // reads a length/count field, then morphs per purpose
	kStrData
	kBinData
	kArrayItems
	kStructItems
	kStructKeyLen
	kStructKeyData
	kResponseBody
	kFaultBody
	kDataLen
	kDataBody
)

// purpose distinguishes the four composites that share the kLength frame.
type purpose uint8

const (
	purposeString purpose = iota
	purposeBinary
	purposeArray
	purposeStruct
)

// intMode distinguishes how kIntPayload turns a raw unsigned magnitude into
// a signed value, which varies by tag and protocol revision.
type intMode uint8

const (
	intPositive intMode = iota // 1.0 Int, 2.1/3.0 PosInt8: value = raw
	intNegative                // 2.1/3.0 NegInt8: value = -raw
	intZigzag                  // 3.0 Int: value = zigzag-decode(raw)
)

// frame is one level of the parse stack. Only the fields relevant to kind
// are meaningful; it is kept as one flat struct (rather than kind-specific
// types) so frames can be morphed in place without reallocating the stack
// slot, which matters for the hot path of scalar-heavy arrays.
type frame struct {
	kind kind

	// remaining/total track chunked payload delivery (strings, binaries,
	// struct keys, stream data) and composite item counts (array/struct).
	remaining int
	total     int

	// octets is the byte width of a fixed-size field currently being staged
	// (int payload, length field, frps data length field).
	octets int

	// purpose/mode select which composite or integer interpretation a
	// kLength/kIntPayload frame is handling.
	purpose purpose
	mode    intMode

	// started/stage are small per-frame progress counters: started for the
	// two-phase response body (have we consumed the one real value yet),
	// stage for the three-phase fault body (0: need code, 1: need message,
	// 2: done).
	started bool
	stage   int
}
