package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	sess, err := store.Create(ctx, "user-1", "admin")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected generated session id")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.UserID != "user-1" || got.Username != "admin" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) after delete, got (%+v, %v)", got, err)
	}
}

func TestMemorySessionStoreUnknownID(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	got, err := store.Get(context.Background(), "no-such-session")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) for unknown id, got (%+v, %v)", got, err)
	}
}

// stubDatabaseProvider stands in for the mongodb backend. It counts
// resolutions and fails every one, mimicking a backend that is down.
type stubDatabaseProvider struct {
	calls int
}

func (p *stubDatabaseProvider) DB(ctx context.Context) (*mongo.Database, error) {
	p.calls++
	return nil, errors.New("backend down")
}

func TestMongoSessionStoreResolvesDatabasePerOperation(t *testing.T) {
	ctx := context.Background()
	provider := &stubDatabaseProvider{}
	store := NewMongoSessionStore(provider, time.Hour)

	// Every operation must go back to the provider for the current handle.
	// Caching the collection would pin whichever client was live at startup
	// and keep failing after the backend reconnects under a new one.
	if _, err := store.Get(ctx, "session-123"); err == nil {
		t.Fatal("expected provider failure to surface from Get")
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 resolution after Get, got %d", provider.calls)
	}

	if _, err := store.Create(ctx, "user-1", "admin"); err == nil {
		t.Fatal("expected provider failure to surface from Create")
	}
	if provider.calls != 2 {
		t.Fatalf("expected 2 resolutions after Create, got %d", provider.calls)
	}

	if err := store.Delete(ctx, "session-123"); err == nil {
		t.Fatal("expected provider failure to surface from Delete")
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 resolutions after Delete, got %d", provider.calls)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(20 * time.Millisecond)

	sess, err := store.Create(ctx, "user-1", "admin")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	got, err := store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Fatalf("expected expired session to be gone, got (%+v, %v)", got, err)
	}
}
