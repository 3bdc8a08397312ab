// Package value defines the in-memory Value tree FastRPC messages decode
// into and encode from, plus the Builder — a token.Callback implementation
// that materializes a tokenizer's event stream into a Value tree.
//
// Builder is the reference consumer used by round-trip tests: it is the
// simplest possible callback, and a tokenizer/serializer pair is considered
// correct when feeding a Builder-observed tree back through the serializer
// and re-parsing with a fresh Builder reproduces an Equal tree.
package value
