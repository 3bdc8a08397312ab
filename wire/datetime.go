package wire

// DateTime is the FastRPC date-time value: a UTC offset, a Unix timestamp,
// and a denormalized local-time breakdown. The breakdown is transmitted and
// stored verbatim — it is never recomputed from Timestamp, so a round-tripped
// DateTime with an internally inconsistent breakdown (e.g. Weekday not
// matching Day/Month/Year) is still valid and must survive encode/decode
// unchanged.
type DateTime struct {
	// TimeZoneQuarterHours is the signed offset from UTC in 15-minute units,
	// range -128..+12 (representable in an int8).
	TimeZoneQuarterHours int8
	// Timestamp is the Unix timestamp in seconds. -1 denotes "outside the
	// representable epoch"; it is carried through unchanged rather than
	// treated as an error.
	Timestamp int64
	Weekday   uint8  // 0 = Sunday .. 6 = Saturday
	Second    uint8  // 0..59
	Minute    uint8  // 0..59
	Hour      uint8  // 0..23
	Day       uint8  // 1..31
	Month     uint8  // 1..12
	Year      uint16 // offset from AD 1600, 0..2047
}

// DateTimeLen30 is the byte count of a packed date-time payload (excluding
// the tag byte) under protocol 3.0: 1 (zone) + 8 (64-bit timestamp) + 5
// (packed breakdown).
const DateTimeLen30 = 14

// DateTimeLen10 is the byte count of a packed date-time payload (excluding
// the tag byte) under protocols 1.0/2.1: 1 (zone) + 4 (32-bit timestamp) + 5
// (packed breakdown).
const DateTimeLen10 = 10

// DateTimeLen returns the packed payload length (excluding the tag byte) for
// the given protocol revision.
func DateTimeLen(v Version) int {
	if v.IsV30() {
		return DateTimeLen30
	}

	return DateTimeLen10
}

// EncodeDateTime packs dt into dst (excluding the tag byte, which the caller
// writes separately). dst must have length >= DateTimeLen(v).
func EncodeDateTime(dst []byte, dt DateTime, v Version) {
	dst[0] = byte(dt.TimeZoneQuarterHours)

	var packedOffset int
	if v.IsV30() {
		PutUint(dst[1:], uint64(dt.Timestamp), 8)
		packedOffset = 9
	} else {
		ts := uint32(dt.Timestamp) //nolint:gosec
		if dt.Timestamp == -1 || dt.Timestamp>>32 != 0 {
			ts = 0xFFFFFFFF
		}
		PutUint(dst[1:], uint64(ts), 4)
		packedOffset = 5
	}

	encodePackedBreakdown(dst[packedOffset:packedOffset+5], dt)
}

// encodePackedBreakdown lays out the weekday/sec/min/hour/day/month/year
// bit-field. Low bits take precedence where a field is split across byte
// boundaries.
func encodePackedBreakdown(dst []byte, dt DateTime) {
	sec := dt.Second & 0x3F
	min := dt.Minute & 0x3F
	hour := dt.Hour & 0x1F
	day := dt.Day & 0x1F
	month := dt.Month & 0x0F
	year := dt.Year & 0x7FF

	dst[0] = (dt.Weekday & 0x7) | ((sec & 0x1F) << 3)
	dst[1] = ((sec >> 5) & 0x1) | (min << 1) | ((hour & 0x1) << 7)
	dst[2] = ((hour >> 1) & 0xF) | ((day & 0xF) << 4)
	dst[3] = ((day >> 4) & 0x1) | (month << 1) | (byte(year&0x7) << 5)
	dst[4] = byte(year >> 3)
}

// DecodeDateTime unpacks a date-time payload of the given protocol revision
// (excluding the tag byte, which the caller has already consumed). src must
// have length >= DateTimeLen(v).
func DecodeDateTime(src []byte, v Version) DateTime {
	dt := DateTime{TimeZoneQuarterHours: int8(src[0])}

	var packedOffset int
	if v.IsV30() {
		dt.Timestamp = int64(GetUint(src[1:], 8)) //nolint:gosec
		packedOffset = 9
	} else {
		ts := uint32(GetUint(src[1:], 4))
		if ts == 0xFFFFFFFF {
			dt.Timestamp = -1
		} else {
			dt.Timestamp = int64(ts)
		}
		packedOffset = 5
	}

	decodePackedBreakdown(src[packedOffset:packedOffset+5], &dt)

	return dt
}

func decodePackedBreakdown(src []byte, dt *DateTime) {
	p0, p1, p2, p3, p4 := src[0], src[1], src[2], src[3], src[4]

	dt.Weekday = p0 & 0x7
	dt.Second = ((p0 >> 3) & 0x1F) | ((p1 & 0x1) << 5)
	dt.Minute = (p1 >> 1) & 0x3F
	dt.Hour = ((p1 >> 7) & 0x1) | ((p2 & 0xF) << 1)
	dt.Day = ((p2 >> 4) & 0xF) | ((p3 & 0x1) << 4)
	dt.Month = (p3 >> 1) & 0xF
	dt.Year = uint16(p3>>5&0x7) | (uint16(p4) << 3)
}
