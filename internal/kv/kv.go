// Package kv defines the uniform get/put contract over a key-value store.
// Concrete backends are swappable; the gateway receives one constructed
// adapter at startup and environment discovery stays in the bootstrap layer.
package kv

import "context"

// Adapter is the storage backend contract.
//
// Get returns ("", nil) when the key is absent: key absence is not an
// error. Put failures always propagate to the caller; an implementation may
// leave a local diagnostic side-copy but must never swallow the error.
type Adapter interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Deleter is implemented by adapters that can remove keys. Callers that
// only hold an Adapter should treat missing Deleter support as "pruning
// unavailable", not as an error.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}
