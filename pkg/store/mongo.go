package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/komapc/yearwheel/pkg/errors"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// MongoConfig configures the MongoDB wheel store.
type MongoConfig struct {
	// URI is the MongoDB connection string (mongodb://...).
	URI string
	// Database defaults to "yearwheel".
	Database string
	// Collection defaults to "wheels".
	Collection string
	// ConnectTimeout bounds the initial connect and ping (default 10s).
	ConnectTimeout time.Duration
	// TTL expires saved wheels after this duration; zero keeps them forever.
	TTL time.Duration
}

// MongoStore persists saved wheels in a MongoDB collection. Layouts are
// stored as BSON subdocuments, so saved wheels are queryable by their
// parameters (year, corner, seasons) without re-parsing JSON.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "yearwheel"
	}
	if cfg.Collection == "" {
		cfg.Collection = "wheels"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}
	if cfg.TTL > 0 {
		if err := s.ensureTTLIndex(ctx, cfg.TTL); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}
	return s, nil
}

// ensureTTLIndex lets MongoDB expire saved wheels by creation time.
func (s *MongoStore) ensureTTLIndex(ctx context.Context, ttl time.Duration) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create ttl index")
	}
	return nil
}

// Save stores a layout and returns the new wheel's id.
func (s *MongoStore) Save(ctx context.Context, name string, l wheel.Layout) (string, error) {
	now := time.Now().UTC()
	w := Wheel{
		ID:        NewID(),
		Name:      name,
		Layout:    l,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.coll.InsertOne(ctx, w); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "save wheel")
	}
	return w.ID, nil
}

// Get retrieves a saved wheel by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Wheel, error) {
	var w Wheel
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return Wheel{}, notFound(id)
	}
	if err != nil {
		return Wheel{}, errors.Wrap(errors.ErrCodeStorage, err, "get wheel %s", id)
	}
	return w, nil
}

// List returns saved wheels newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Wheel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list wheels")
	}
	defer cur.Close(ctx)

	var out []Wheel
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode wheels")
	}
	return out, nil
}

// Delete removes a saved wheel.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete wheel %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements WheelStore.
var _ WheelStore = (*MongoStore)(nil)
