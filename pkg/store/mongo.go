package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// MongoConfig holds connection settings for the MongoDB backend.
type MongoConfig struct {
	URI        string // mongodb:// connection string
	Database   string // database name, defaults to "delvemap"
	Collection string // collection name, defaults to "dungeons"
}

// MongoStore persists snapshots in a MongoDB collection, keyed by the
// snapshot ID as _id. Used by service deployments where dungeons must
// survive restarts and be shared across instances.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// wrapDriverErr wraps a driver error, distinguishing deadline expiry so
// the API can answer 504 instead of a generic 500.
func wrapDriverErr(err error, format string, args ...any) error {
	code := apperrors.ErrCodeStore
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.ErrCodeTimeout
	}
	return apperrors.Wrap(code, err, format, args...)
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "delvemap"
	}
	if cfg.Collection == "" {
		cfg.Collection = "dungeons"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, wrapDriverErr(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, wrapDriverErr(err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put upserts a snapshot by its ID.
func (m *MongoStore) Put(ctx context.Context, s *Snapshot) error {
	if s == nil || s.ID == "" {
		return ErrInvalidID
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": s.ID}, s,
		options.Replace().SetUpsert(true))
	if err != nil {
		return wrapDriverErr(err, "store snapshot")
	}
	return nil
}

// Get retrieves a snapshot by ID.
func (m *MongoStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapDriverErr(err, "load snapshot")
	}
	return &snap, nil
}

// Delete removes a snapshot.
func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapDriverErr(err, "delete snapshot")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *MongoStore) List(ctx context.Context) ([]*Snapshot, error) {
	cur, err := m.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, wrapDriverErr(err, "list snapshots")
	}
	defer cur.Close(ctx)

	var out []*Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrapDriverErr(err, "decode snapshots")
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
