package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Session is a server-side record of a successful login. The client only
// ever holds the signed session ID in a cookie.
type Session struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Username  string    `bson:"username"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Expired reports whether the session has passed its fixed expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStore tracks live sessions. Get returns (nil, nil) for unknown or
// expired session IDs; an error means the store itself is unreachable.
type SessionStore interface {
	Create(ctx context.Context, userID, username string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func newSessionID() string {
	return uuid.NewString()
}

// MemorySessionStore keeps sessions in a TTL cache. Used with the in-memory
// storage backend; sessions do not survive a restart.
type MemorySessionStore struct {
	ttl   time.Duration
	cache *gocache.Cache
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:   ttl,
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, userID, username string) (*Session, error) {
	sess := &Session{
		ID:        newSessionID(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess, nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, nil
	}
	sess, ok := v.(*Session)
	if !ok || sess.Expired() {
		return nil, nil
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

const sessionsCollection = "sessions"

// DatabaseProvider yields the live database handle. Satisfied by the mongodb
// storage backend, whose handle may be replaced after a reconnect.
type DatabaseProvider interface {
	DB(ctx context.Context) (*mongo.Database, error)
}

// MongoSessionStore persists sessions in a capped-lifetime collection so
// logins survive process restarts when the mongodb backend is active. A TTL
// index reaps expired documents; Get additionally filters on expires_at since
// the reaper only runs periodically.
type MongoSessionStore struct {
	db  DatabaseProvider
	ttl time.Duration

	mu      sync.Mutex
	indexed bool
}

func NewMongoSessionStore(db DatabaseProvider, ttl time.Duration) *MongoSessionStore {
	return &MongoSessionStore{db: db, ttl: ttl}
}

// collection resolves the sessions collection through the provider on every
// call. Holding on to a *mongo.Collection would pin the client that was live
// at startup and keep failing after the backend reconnects under a fresh one.
// The TTL index is created on the first successful resolution; it lives on
// the server, so reconnects do not need to recreate it.
func (s *MongoSessionStore) collection(ctx context.Context) (*mongo.Collection, error) {
	database, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	col := database.Collection(sessionsCollection)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.indexed {
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
		}
		if _, err := col.Indexes().CreateOne(ctx, mi); err != nil {
			return nil, err
		}
		s.indexed = true
	}
	return col, nil
}

func (s *MongoSessionStore) Create(ctx context.Context, userID, username string) (*Session, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        newSessionID(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if _, err := col.InsertOne(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MongoSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	var sess Session
	filter := bson.M{"_id": id, "expires_at": bson.M{"$gt": time.Now()}}
	if err := col.FindOne(ctx, filter).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, id string) error {
	col, err := s.collection(ctx)
	if err != nil {
		return err
	}
	_, err = col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
