package token

import "github.com/fastrpc-go/fastrpc/internal/options"

// DefaultMaxDepth bounds the parse stack's nesting depth (arrays/structs
// nested within each other) so a malicious or malformed input cannot grow
// the stack without bound. It is deliberately generous: real FastRPC
// messages rarely nest more than a handful of levels deep.
const DefaultMaxDepth = 512

// Option configures a Tokenizer at construction time.
type Option = options.Option[*Tokenizer]

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return options.NoError(func(t *Tokenizer) {
		t.maxDepth = n
	})
}

// WithFrps enables frps mode: a Response envelope may interleave zero or
// more frps Data chunks with its single value, in any order, instead of
// requiring the value immediately after the Response tag. Off by
// default, matching a plain request/response FastRPC peer.
func WithFrps() Option {
	return options.NoError(func(t *Tokenizer) {
		t.allowFrps = true
	})
}
