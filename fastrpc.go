// Package fastrpc implements the FastRPC binary RPC wire protocol: a
// compact, self-describing tag/length/value encoding for remote method
// calls, their responses, and faults, across protocol revisions 1.0, 2.1
// and 3.0.
//
// # Core features
//
//   - A chunked, pull-based tokenizer (package token) that decodes a
//     message incrementally as bytes arrive, suspending and resuming across
//     arbitrary chunk boundaries with no internal buffering beyond a few
//     bytes of staging state.
//   - A chunked, push-based serializer (package serialize) that is the
//     tokenizer's mirror image: it writes a message into caller-supplied
//     buffers, suspending when a buffer is full and resuming on the next
//     call.
//   - A reference in-memory value tree (package value) with a
//     token.Callback implementation (Builder) that materializes the
//     tokenizer's event stream, plus Display/Equal helpers for tests and
//     debug logging.
//   - Support for the frps extension: server-to-client streaming responses
//     that interleave an arbitrary sequence of raw Data blocks with the
//     eventual Response value.
//
// # Basic usage
//
// Decoding a complete, already-buffered message:
//
//	msg, err := fastrpc.DecodeMessage(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(msg.Method, msg.Params)
//
// Encoding a method call into a single buffer:
//
//	data, err := fastrpc.EncodeCall("server.stat", []value.Value{value.Int(1), value.Int(2)})
//
// # Package structure
//
// This package provides convenient top-level wrappers around the token,
// serialize and value packages for the common one-shot case: a complete
// message already held in memory. A connection that must decode or encode
// incrementally — the reason package token and package serialize are
// chunk-resumable in the first place — should use those packages directly
// instead of these wrappers.
package fastrpc

import (
	"github.com/fastrpc-go/fastrpc/serialize"
	"github.com/fastrpc-go/fastrpc/token"
	"github.com/fastrpc-go/fastrpc/value"
	"github.com/fastrpc-go/fastrpc/wire"
)

// ProtocolVersion identifies a FastRPC wire revision. It is a plain alias
// of wire.Version: the wire package owns the byte-level meaning, this
// package re-exports it so callers configuring a Tokenizer/Serializer don't
// need to import wire directly for the common case.
type ProtocolVersion = wire.Version

// The three protocol revisions this module understands.
var (
	Version10 = wire.Version10
	Version21 = wire.Version21
	Version30 = wire.Version30
)

// DecodeMessage decodes one complete, already-buffered FastRPC message and
// returns its reconstructed value.Message. It is a thin wrapper over
// token.New, a value.Builder, one Parse of the whole buffer (plus a second
// Parse of any leftover bytes, to report them) and Close — use package
// token directly for incremental decoding or frps streaming.
func DecodeMessage(data []byte, opts ...token.Option) (value.Message, error) {
	t := token.New(opts...)
	b := value.NewBuilder()

	_, consumed := t.Parse(data, b)
	if err := t.Err(); err != nil {
		return value.Message{}, err
	}
	if consumed < len(data) {
		// The message ended before the buffer did. Re-offering the leftover
		// surfaces the structurally-appropriate trailing-bytes error (a stray
		// byte after a Response and a third fault value report differently).
		t.Parse(data[consumed:], b)
		if err := t.Err(); err != nil {
			return value.Message{}, err
		}
	}
	if err := t.Close(); err != nil {
		return value.Message{}, err
	}
	if err := b.Err(); err != nil {
		return value.Message{}, err
	}

	return b.Message(), nil
}

// EncodeCall encodes a complete method-call message (header, method name,
// and every parameter) into one returned byte slice.
func EncodeCall(method string, params []value.Value, opts ...serialize.Option) ([]byte, error) {
	s := serialize.New(opts...)

	var out []byte
	var err error
	out, err = drain(out, s, func(dst []byte) (int, error) { return s.WriteCall(dst, method) })
	if err != nil {
		return nil, err
	}

	for _, p := range params {
		out, err = drain(out, s, func(dst []byte) (int, error) { return s.WriteValue(dst, p) })
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// EncodeResponse encodes a complete Response message into one returned byte
// slice.
func EncodeResponse(v value.Value, opts ...serialize.Option) ([]byte, error) {
	s := serialize.New(opts...)

	return drain(nil, s, func(dst []byte) (int, error) { return s.WriteResponse(dst, v) })
}

// EncodeFault encodes a complete Fault message into one returned byte slice.
func EncodeFault(code int64, message string, opts ...serialize.Option) ([]byte, error) {
	s := serialize.New(opts...)

	return drain(nil, s, func(dst []byte) (int, error) { return s.WriteFault(dst, code, message) })
}

// drain repeatedly grows buf and calls write, resuming the same suspended
// operation on each call, until the Serializer reports it has drained (see
// Serializer.Done): a Write* call that fills its entire dst window without
// finishing looks identical, byte-for-byte, to one that finishes exactly at
// the window boundary, so completion must be read from Done rather than
// guessed from how many bytes were written.
func drain(buf []byte, s *serialize.Serializer, write func(dst []byte) (int, error)) ([]byte, error) {
	const chunk = 256

	for {
		start := len(buf)
		buf = append(buf, make([]byte, chunk)...)
		n, err := write(buf[start:])
		buf = buf[:start+n]
		if err != nil {
			return nil, err
		}
		if s.Done() {
			return buf, nil
		}
	}
}
