// Package serialize implements the FastRPC serializer: the push-based dual
// of package token. Each Write* operation encodes one complete unit — a
// Call's header and method name, a Response's header and value, a Fault's
// header and two values, a standalone Value (used both for a Call's
// parameters and recursively for array/struct children), or one frps Data
// block — into a caller-supplied destination slice.
//
// If dst runs out of room before the unit is fully written, the Serializer
// suspends: it returns what it wrote so far with no error, and retains
// enough state (an explicit frame stack, mirroring the tokenizer's, plus a
// small staging source) to continue from exactly that point the next time
// any Write* method is called with a fresh or extended dst. A caller mid-way
// through a suspended operation does not need to repeat its arguments — the
// original value is already captured on the frame stack — but must not
// start a different operation until the current one drains; doing so is
// undefined (the new arguments are ignored until the old operation empties
// the stack).
package serialize
