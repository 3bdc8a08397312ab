// Package keytrack detects duplicate struct keys while a value.Builder
// materializes a Struct from the tokenizer's event stream.
//
// Keys are hashed with xxhash64 first, falling back to an exact string
// compare only within a hash bucket. A genuine hash collision between two
// distinct keys must never be mistaken for a duplicate, so each bucket
// keeps every key that hashed to it rather than the single latest one.
package keytrack

import (
	"github.com/cespare/xxhash/v2"

	"github.com/fastrpc-go/fastrpc/errs"
)

// Tracker tracks the keys seen so far within one struct and rejects a
// repeat. A fresh Tracker is needed per struct (nested structs each get
// their own), so it is cheap to construct rather than pooled.
type Tracker struct {
	seen map[uint64][]string
}

// New returns an empty Tracker sized for n keys.
func New(n int) *Tracker {
	return &Tracker{seen: make(map[uint64][]string, n)}
}

// Add records key, returning errs.ErrDuplicateKey if it was already
// recorded. A hash collision between two different keys is not an error: both
// are kept and compared by exact string equality.
func (t *Tracker) Add(key string) error {
	h := xxhash.Sum64String(key)
	bucket := t.seen[h]
	for _, existing := range bucket {
		if existing == key {
			return errs.ErrDuplicateKey
		}
	}
	t.seen[h] = append(bucket, key)

	return nil
}
