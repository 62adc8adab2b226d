// Package docstore persists platform records in a document database. It owns
// the mapping from record kinds to collection names and from the store's
// internal identifiers to the opaque external form handed to callers.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUnavailable is returned by every operation when no live store
	// connection exists.
	ErrUnavailable = errors.New("docstore: store unavailable")

	// ErrWriteFailed wraps writes rejected by the store.
	ErrWriteFailed = errors.New("docstore: write failed")

	// ErrInvalidID is returned when an external identifier cannot be parsed
	// back into the store's identifier scheme.
	ErrInvalidID = errors.New("docstore: invalid identifier")
)

// Store is a connection to a document database. Implementations must be safe
// for concurrent use; the façade adds no locking of its own. Query results
// come back in store-defined order, which for the implementations here is
// insertion order.
type Store interface {
	// Available reports whether a live connection exists. Operations on an
	// unavailable store return ErrUnavailable instead of crashing.
	Available() bool

	// Insert persists doc into collection and returns its new identifier.
	Insert(ctx context.Context, collection string, doc map[string]any) (primitive.ObjectID, error)

	// Query returns at most limit documents of collection matching filter.
	// A nil or empty filter matches everything; limit <= 0 means no limit.
	Query(ctx context.Context, collection string, filter map[string]any, limit int64) ([]map[string]any, error)

	// Collections names the collections currently present in the store.
	Collections(ctx context.Context) ([]string, error)
}
