package wire

// Hard ceilings used to reject adversarial inputs before any payload is
// consumed. These bound the two length-prefixed scalar types (string,
// binary) and the two counted composites (array, struct).
const (
	MaxStringLength = 1 << 30 // 1 GiB
	MaxBinaryLength = 1 << 30 // 1 GiB
	MaxArrayLength  = 1 << 20 // 1 Mi entries
	MaxStructLength = 1 << 20 // 1 Mi entries

	// MaxMethodNameLength is the ceiling on a Call envelope's method name;
	// MaxKeyLength is the same ceiling for struct keys (keys are 1..255 bytes).
	MaxMethodNameLength = 255
	MaxKeyLength        = 255

	// MagicByte0 and MagicByte1 are the two fixed bytes that open every
	// message, spelling 0xCA11 ("CALL") in hex.
	MagicByte0 = 0xCA
	MagicByte1 = 0x11

	// HeaderLength is the magic + major + minor byte count, before the
	// envelope type tag.
	HeaderLength = 4

	// StagingBufferSize is sized to the largest single primitive that must
	// be buffered contiguously across chunk boundaries: a 3.0 date-time tag
	// (1) + payload (14) = 15 bytes, plus headroom.
	StagingBufferSize = 17
)
