package docstore

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chesshub/chesshub"
)

// Records is the generic persistence façade. Given any record kind it
// derives the collection name, stores the record's document, and hands back
// identifiers in their external string form only.
type Records struct {
	store Store
}

// NewRecords returns a façade over store.
func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// CollectionName derives the collection for a record kind. Existing stored
// data is addressed through this derivation; it must stay lowercase(kind).
func CollectionName(kind string) string {
	return strings.ToLower(kind)
}

// FormatID renders an internal identifier in its external string form: a
// 24-character lowercase hex token. External identifiers are otherwise
// opaque; equality is the only operation callers may rely on.
func FormatID(id primitive.ObjectID) string {
	return id.Hex()
}

// ParseID converts an external identifier back into the store's internal
// form. Malformed input (wrong length, non-hex characters) fails with
// ErrInvalidID.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Available reports whether the underlying store has a live connection.
func (r *Records) Available() bool {
	return r.store.Available()
}

// Create validates rec, stores its document in the collection derived from
// its kind, and returns the external identifier of the new record. Store
// errors (ErrUnavailable, ErrWriteFailed) and validation errors propagate
// untouched; nothing is retried.
func (r *Records) Create(ctx context.Context, rec chesshub.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	id, err := r.store.Insert(ctx, CollectionName(rec.Kind()), rec.Document())
	if err != nil {
		return "", err
	}
	return FormatID(id), nil
}

// List returns at most limit documents of the given kind matching filter
// (limit <= 0 means all, nil filter matches all), in the store's fetch
// order. Every returned document is a fresh map with the internal "_id"
// field replaced by an external "id" field; raw internal identifiers never
// reach the caller, and the store's own documents are never aliased.
func (r *Records) List(ctx context.Context, kind string, filter map[string]any, limit int64) ([]map[string]any, error) {
	docs, err := r.store.Query(ctx, CollectionName(kind), filter, limit)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		entry := make(map[string]any, len(doc))
		for k, v := range doc {
			if k == "_id" {
				continue
			}
			entry[k] = v
		}
		if oid, ok := doc["_id"].(primitive.ObjectID); ok {
			entry["id"] = FormatID(oid)
		}
		out = append(out, entry)
	}
	return out, nil
}
