package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const dialTimeout = 10 * time.Second

// Mongo is a Store backed by a MongoDB database. A Mongo without a live
// connection stays usable: every operation reports ErrUnavailable, so a
// missing or broken DATABASE_URL degrades the service instead of aborting
// startup. The underlying client is safe for concurrent use.
type Mongo struct {
	db  *mongo.Database
	log *zap.SugaredLogger
}

// Dial connects to the database named by uri and name. Connection failures
// are logged and produce an unavailable adapter, never an error.
func Dial(ctx context.Context, uri, name string, log *zap.SugaredLogger) *Mongo {
	m := &Mongo{log: log}

	if uri == "" {
		log.Warnw("no database url configured, store unavailable")
		return m
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Warnw("could not connect to store", zap.Error(err))
		return m
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Warnw("could not reach store", zap.Error(err))
		return m
	}

	log.Infow("connected to store", "database", name)
	m.db = client.Database(name)
	return m
}

// Available implements Store.
func (m *Mongo) Available() bool {
	return m != nil && m.db != nil
}

// Name returns the database name, or "" when unavailable.
func (m *Mongo) Name() string {
	if !m.Available() {
		return ""
	}
	return m.db.Name()
}

// Insert implements Store.
func (m *Mongo) Insert(ctx context.Context, collection string, doc map[string]any) (primitive.ObjectID, error) {
	if !m.Available() {
		return primitive.NilObjectID, ErrUnavailable
	}

	res, err := m.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: insert into %s: %v", ErrWriteFailed, collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected id type %T", ErrWriteFailed, res.InsertedID)
	}
	return oid, nil
}

// Query implements Store. No sort is applied; ordering is whatever the
// server returns, which for an unindexed find is insertion order.
func (m *Mongo) Query(ctx context.Context, collection string, filter map[string]any, limit int64) ([]map[string]any, error) {
	if !m.Available() {
		return nil, ErrUnavailable
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}

	cur, err := m.db.Collection(collection).Find(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	var docs []map[string]any
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return docs, nil
}

// Collections implements Store.
func (m *Mongo) Collections(ctx context.Context) ([]string, error) {
	if !m.Available() {
		return nil, ErrUnavailable
	}

	names, err := m.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}
