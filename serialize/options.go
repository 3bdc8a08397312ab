package serialize

import (
	"github.com/fastrpc-go/fastrpc/internal/options"
	"github.com/fastrpc-go/fastrpc/wire"
)

// Option configures a Serializer at construction time.
type Option = options.Option[*Serializer]

// WithVersion targets the serializer at a specific protocol revision instead
// of wire.DefaultVersion. It governs integer tag choice (Int vs
// PosInt8/NegInt8 vs zigzag Int), length-octet width, and date-time payload
// layout.
func WithVersion(v wire.Version) Option {
	return options.NoError(func(s *Serializer) { s.version = v })
}
