package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio-api/internal/logger"
)

// MongoOptions are the connection knobs for MongoStorage. Pool bounds and
// idle timeout tune the shared connection pool; they are not behavioral
// contracts.
type MongoOptions struct {
	URI                    string
	Database               string
	MinPoolSize            uint64
	MaxPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ServerSelectionTimeout time.Duration
}

func (o *MongoOptions) applyDefaults() {
	if o.Database == "" {
		o.Database = "portfolio"
	}
	if o.MinPoolSize == 0 {
		o.MinPoolSize = 5
	}
	if o.MaxPoolSize == 0 {
		o.MaxPoolSize = 10
	}
	if o.MaxConnIdleTime == 0 {
		o.MaxConnIdleTime = 45 * time.Second
	}
	if o.ServerSelectionTimeout == 0 {
		o.ServerSelectionTimeout = 5 * time.Second
	}
}

// MongoStorage implements Storage against MongoDB. The client is established
// lazily, cached on the instance and shared across all concurrent requests;
// if an operation finds the cached connection dead, the next one reconnects.
type MongoStorage struct {
	opts MongoOptions

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

var _ Storage = (*MongoStorage)(nil)

func NewMongoStorage(opts MongoOptions) (*MongoStorage, error) {
	if opts.URI == "" {
		return nil, errors.New("storage: mongodb uri is required")
	}
	opts.applyDefaults()
	return &MongoStorage{opts: opts}, nil
}

// Connect establishes the connection eagerly. Callers may skip it; every
// operation connects on demand through database().
func (s *MongoStorage) Connect(ctx context.Context) error {
	_, err := s.database(ctx)
	return err
}

// Close tears down the cached client. Safe to call on a never-connected or
// already-closed instance.
func (s *MongoStorage) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client, s.db = nil, nil
	return err
}

// DB exposes the underlying database handle so collaborators such as the
// session store can share the pooled connection instead of opening their own.
func (s *MongoStorage) DB(ctx context.Context) (*mongo.Database, error) {
	return s.database(ctx)
}

// database returns the cached database handle, connecting if needed.
func (s *MongoStorage) database(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	clientOpts := options.Client().
		ApplyURI(s.opts.URI).
		SetMinPoolSize(s.opts.MinPoolSize).
		SetMaxPoolSize(s.opts.MaxPoolSize).
		SetMaxConnIdleTime(s.opts.MaxConnIdleTime).
		SetServerSelectionTimeout(s.opts.ServerSelectionTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	db := client.Database(s.opts.Database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.client = client
	s.db = db
	logger.Log.Infof("mongodb connected database=%s", s.opts.Database)
	return s.db, nil
}

// ping verifies the cached connection is alive, reconnecting once if not.
// GetUserByUsername uses it to fail loudly instead of reporting "no such
// user" on a dead backend.
func (s *MongoStorage) ping(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		_, err := s.database(ctx)
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		s.invalidate(client)
		if _, err := s.database(ctx); err != nil {
			return err
		}
	}
	return nil
}

// invalidate drops the cached client so the next operation reconnects. The
// client argument guards against discarding a connection some other goroutine
// already replaced.
func (s *MongoStorage) invalidate(client *mongo.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != client {
		return
	}
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
	s.client, s.db = nil, nil
}

// opError classifies a driver error. Duplicate-key errors pass through for
// the caller to turn into a field-level validation error; timeouts and
// non-server errors mean the backend is unreachable.
func (s *MongoStorage) opError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err) {
		return err
	}
	var srvErr mongo.ServerError
	if mongo.IsTimeout(err) || !errors.As(err, &srvErr) {
		s.mu.Lock()
		client := s.client
		s.mu.Unlock()
		s.invalidate(client)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique username
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("uniq_username").SetUnique(true),
		}
		if _, err := d.Collection("users").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// blog_posts: unique slug, created_at desc for listing
	{
		if _, err := d.Collection("blog_posts").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("uniq_slug").SetUnique(true),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("blog_posts").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at_desc"),
		}); err != nil {
			return err
		}
	}

	// display_order asc on the ordered content collections
	for _, name := range []string{"certifications", "hackathons", "projects"} {
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "display_order", Value: 1}},
			Options: options.Index().SetName("idx_display_order"),
		}
		if _, err := d.Collection(name).Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}
	return nil
}

// displayOrderSort is the shared list sort: display_order ascending with _id
// as the insertion-order tiebreak.
var displayOrderSort = bson.D{
	{Key: "display_order", Value: 1},
	{Key: "_id", Value: 1},
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)
	results := []T{}
	for cur.Next(ctx) {
		var rec T
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
