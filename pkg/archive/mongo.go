package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/gracetower/pkg/io"
)

// MongoConfig locates the results collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	// ConnectTimeout bounds the initial connection and ping. Zero means 10s.
	ConnectTimeout time.Duration
}

// MongoArchive stores records as documents, one per processed graph.
type MongoArchive struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoArchive connects, pings the primary and ensures the indexes used
// by [MongoArchive.Recent] and [MongoArchive.ByHash].
func NewMongoArchive(ctx context.Context, cfg MongoConfig) (*MongoArchive, error) {
	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "hash", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return &MongoArchive{client: client, coll: coll}, nil
}

// Save inserts rec as a new document.
func (a *MongoArchive) Save(ctx context.Context, rec io.Record) error {
	if _, err := a.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert %s: %w", rec.Graph, err)
	}
	return nil
}

// Recent returns the newest records.
func (a *MongoArchive) Recent(ctx context.Context, limit int) ([]io.Record, error) {
	return a.find(ctx, bson.D{}, limit)
}

// ByHash returns the records of one graph.
func (a *MongoArchive) ByHash(ctx context.Context, hash string) ([]io.Record, error) {
	return a.find(ctx, bson.D{{Key: "hash", Value: hash}}, 0)
}

func (a *MongoArchive) find(ctx context.Context, filter bson.D, limit int) ([]io.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := a.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	var out []io.Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (a *MongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

var _ Archive = (*MongoArchive)(nil)
