package serialize

import "github.com/fastrpc-go/fastrpc/value"

// skind is the serializer's own frame discriminator, mirroring token.kind
// but for the write direction: where the tokenizer's frame records what it
// is waiting to read, the serializer's frame records what it still has left
// to write.
type skind uint8

const (
	kHeader skind = iota
	kEnvelopeTag
	kCallName
	kValue
	kArrayItems
	kStructItems
	kStructKey
	kDataHead
)

// frame is one entry on the serializer's explicit stack. Only the fields
// relevant to kind are meaningful; started/stage track which of a frame's
// internal phases (e.g. "write the length head" then "write the payload
// bytes") is in progress.
type frame struct {
	kind skind

	started bool
	stage   int

	envelope byte // wire.Type for kEnvelopeTag

	method string // kCallName
	key    string // kStructKey

	value value.Value // kValue, kDataHead-adjacent (unused there)

	data []byte // kDataHead payload

	items []value.Value // kArrayItems
	idx   int           // kArrayItems / kStructItems

	keys  []string // kStructItems
	strct map[string]value.Value
}
