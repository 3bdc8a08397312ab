// Package token implements the FastRPC tokenizer: a single-threaded,
// cooperative, pull-based parser that consumes arbitrary byte chunks and
// emits a stream of typed events through the Callback interface.
//
// Parse may be called any number of times with successive chunks of one
// logical message. The tokenizer owns an explicit stack of parse states plus
// a small fixed staging buffer (wire.StagingBufferSize bytes) for fields
// that must be read as one contiguous unit; it never retains a reference to
// a caller's chunk past the return of Parse, and the events it hands the
// callback for string/binary/struct-key/stream payloads are always slices
// into the chunk currently being processed.
//
// A single Tokenizer decodes protocol 1.0, 2.1 and 3.0 messages
// interchangeably: the revision is read once from the header and every
// subsequent branch (length-field width, Int vs PosInt8/NegInt8, Null
// legality, date-time layout) is selected from that single value.
package token
