package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/models"
)

// storageBackends returns a factory per backend under test. The in-memory
// backend always runs; the mongodb backend runs when MONGODB_TEST_URI points
// at a reachable server, each test against a throwaway database that is
// dropped afterwards. Both backends must pass the exact same suite: that is
// the interchangeability contract the Storage interface exists to guarantee.
func storageBackends(t *testing.T) map[string]func(t *testing.T) Storage {
	t.Helper()
	backends := map[string]func(t *testing.T) Storage{
		"memory": func(t *testing.T) Storage { return NewMemoryStorage() },
	}
	if uri := os.Getenv("MONGODB_TEST_URI"); uri != "" {
		backends["mongodb"] = func(t *testing.T) Storage {
			store, err := NewMongoStorage(MongoOptions{
				URI:      uri,
				Database: fmt.Sprintf("portfolio_test_%s", primitive.NewObjectID().Hex()),
			})
			if err != nil {
				t.Fatalf("mongo storage init failed: %v", err)
			}
			db, err := store.DB(context.Background())
			if err != nil {
				t.Fatalf("mongo connect failed: %v", err)
			}
			t.Cleanup(func() {
				_ = db.Drop(context.Background())
				_ = store.Close(context.Background())
			})
			return store
		}
	}
	return backends
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store Storage)) {
	for name, factory := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func newCertification(title string, order int) models.Certification {
	return models.Certification{
		Company:      "Acme",
		Title:        title,
		Issued:       "Jan 2025",
		Platform:     "Coursera",
		Icon:         "aws",
		CardColor:    "#0f172a",
		ButtonColor:  "#2563eb",
		TitleColor:   "#f8fafc",
		TextColor:    "#94a3b8",
		CertImageURL: "https://img.example.com/cert.png",
		DisplayOrder: order,
	}
}

func newBlogPost(title, slug string, published bool) models.BlogPost {
	return models.BlogPost{
		Title:       title,
		Slug:        slug,
		Content:     "body",
		Excerpt:     "summary",
		CoverImage:  "https://img.example.com/cover.png",
		Author:      "Atharv",
		IsPublished: published,
	}
}

func TestCertificationCRUD(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		created, err := store.CreateCertification(ctx, newCertification("AWS SAA", 0))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID.IsZero() {
			t.Fatal("expected generated id")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Fatal("expected timestamps to be set")
		}

		got, err := store.GetCertification(ctx, created.ID.Hex())
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got == nil || got.Title != "AWS SAA" {
			t.Fatalf("unexpected record: %+v", got)
		}

		newTitle := "AWS SAP"
		updated, err := store.UpdateCertification(ctx, created.ID.Hex(), models.CertificationUpdate{Title: &newTitle})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.Title != newTitle {
			t.Fatalf("expected title %q, got %q", newTitle, updated.Title)
		}
		if updated.Company != "Acme" {
			t.Fatalf("partial update must not clear unset fields, got company %q", updated.Company)
		}
		if updated.UpdatedAt.Before(updated.CreatedAt) {
			t.Fatal("expected updated_at to move forward")
		}

		deleted, err := store.DeleteCertification(ctx, created.ID.Hex())
		if err != nil || !deleted {
			t.Fatalf("expected delete to succeed, got (%v, %v)", deleted, err)
		}
		got, err = store.GetCertification(ctx, created.ID.Hex())
		if err != nil || got != nil {
			t.Fatalf("expected (nil, nil) after delete, got (%+v, %v)", got, err)
		}
	})
}

func TestCertificationValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		invalid := newCertification("AWS SAA", 0)
		invalid.Company = ""
		_, err := store.CreateCertification(ctx, invalid)

		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if vErr.Field != "company" {
			t.Fatalf("expected company field, got %q", vErr.Field)
		}

		all, err := store.GetAllCertifications(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(all) != 0 {
			t.Fatalf("rejected create must not persist, found %d records", len(all))
		}
	})
}

func TestDeleteUnknownID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		for name, del := range map[string]func() (bool, error){
			"certification": func() (bool, error) { return store.DeleteCertification(ctx, "665f1f77bcf86cd799439011") },
			"hackathon":     func() (bool, error) { return store.DeleteHackathon(ctx, "665f1f77bcf86cd799439011") },
			"project":       func() (bool, error) { return store.DeleteProject(ctx, "not-even-an-objectid") },
			"blog post":     func() (bool, error) { return store.DeleteBlogPost(ctx, "665f1f77bcf86cd799439011") },
		} {
			deleted, err := del()
			if err != nil {
				t.Fatalf("%s: unexpected error %v", name, err)
			}
			if deleted {
				t.Fatalf("%s: delete of unknown id must report false", name)
			}
		}
	})
}

func TestDisplayOrderSortWithInsertionTiebreak(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		// Insert out of order, with two records sharing an order value.
		first, err := store.CreateCertification(ctx, newCertification("third", 2))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		second, err := store.CreateCertification(ctx, newCertification("first", 0))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		third, err := store.CreateCertification(ctx, newCertification("also-first", 0))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		all, err := store.GetAllCertifications(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		wantTitles := []string{"first", "also-first", "third"}
		if len(all) != len(wantTitles) {
			t.Fatalf("expected %d records, got %d", len(wantTitles), len(all))
		}
		for i, want := range wantTitles {
			if all[i].Title != want {
				t.Fatalf("position %d: expected %q, got %q", i, want, all[i].Title)
			}
		}

		// Reordering via update must be reflected on the next list.
		newOrder := 1
		if _, err := store.UpdateCertification(ctx, first.ID.Hex(), models.CertificationUpdate{DisplayOrder: &newOrder}); err != nil {
			t.Fatalf("reorder failed: %v", err)
		}
		all, err = store.GetAllCertifications(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if all[0].ID != second.ID || all[1].ID != third.ID || all[2].ID != first.ID {
			t.Fatalf("unexpected order after reorder: %v", []string{all[0].Title, all[1].Title, all[2].Title})
		}
	})
}

func TestAboutSingleton(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		about, err := store.GetAbout(ctx)
		if err != nil || about != nil {
			t.Fatalf("expected (nil, nil) before first upsert, got (%+v, %v)", about, err)
		}

		in := models.AboutInput{
			Bio:       "I build things",
			Education: "B.Tech",
			Languages: "English, Hindi",
			Skills:    []string{"Go", "TypeScript"},
			Tools:     []string{"Docker"},
		}
		created, err := store.UpsertAbout(ctx, in)
		if err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		if created.ID.IsZero() {
			t.Fatal("expected generated id")
		}

		in.Bio = "I still build things"
		updated, err := store.UpsertAbout(ctx, in)
		if err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}
		if updated.ID != created.ID {
			t.Fatal("upsert must keep the singleton id stable")
		}
		if updated.Bio != "I still build things" {
			t.Fatalf("expected replaced bio, got %q", updated.Bio)
		}
	})
}

func TestAboutConcurrentUpsert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()
		in := models.AboutInput{
			Bio:       "I build things",
			Education: "B.Tech",
			Languages: "English",
		}

		// Concurrent first writes must not produce a second document.
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.UpsertAbout(ctx, in); err != nil {
					t.Errorf("concurrent upsert failed: %v", err)
				}
			}()
		}
		wg.Wait()

		about, err := store.GetAbout(ctx)
		if err != nil || about == nil {
			t.Fatalf("expected the singleton to exist, got (%+v, %v)", about, err)
		}
		again, err := store.UpsertAbout(ctx, in)
		if err != nil {
			t.Fatalf("follow-up upsert failed: %v", err)
		}
		if again.ID != about.ID {
			t.Fatalf("expected one stable document, got ids %s and %s", about.ID.Hex(), again.ID.Hex())
		}
	})
}

func TestHackathonSideValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		created, err := store.CreateHackathon(ctx, models.Hackathon{
			Name:      "Smart India Hackathon",
			Role:      "Team Lead",
			Organizer: "Govt of India",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.Side != models.SideLeft {
			t.Fatalf("expected default side %q, got %q", models.SideLeft, created.Side)
		}

		bad := "middle"
		_, err = store.UpdateHackathon(ctx, created.ID.Hex(), models.HackathonUpdate{Side: &bad})
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "side" {
			t.Fatalf("expected side validation error, got %v", err)
		}

		right := models.SideRight
		updated, err := store.UpdateHackathon(ctx, created.ID.Hex(), models.HackathonUpdate{Side: &right})
		if err != nil {
			t.Fatalf("valid side update failed: %v", err)
		}
		if updated.Side != models.SideRight {
			t.Fatalf("expected side %q, got %q", models.SideRight, updated.Side)
		}
	})
}

func TestBlogSlugUniqueness(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		first, err := store.CreateBlogPost(ctx, newBlogPost("First", "first-post", true))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		_, err = store.CreateBlogPost(ctx, newBlogPost("Duplicate", "first-post", false))
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "slug" {
			t.Fatalf("expected slug validation error, got %v", err)
		}

		second, err := store.CreateBlogPost(ctx, newBlogPost("Second", "second-post", false))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		// Renaming onto a taken slug is rejected; keeping your own slug is fine.
		taken := "first-post"
		_, err = store.UpdateBlogPost(ctx, second.ID.Hex(), models.BlogPostUpdate{Slug: &taken})
		if !errors.As(err, &vErr) || vErr.Field != "slug" {
			t.Fatalf("expected slug validation error on rename, got %v", err)
		}
		same := "first-post"
		if _, err := store.UpdateBlogPost(ctx, first.ID.Hex(), models.BlogPostUpdate{Slug: &same}); err != nil {
			t.Fatalf("no-op slug update must succeed, got %v", err)
		}
	})
}

func TestBlogPublishedFiltering(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		if _, err := store.CreateBlogPost(ctx, newBlogPost("Older", "older", true)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		draft, err := store.CreateBlogPost(ctx, newBlogPost("Draft", "draft", false))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := store.CreateBlogPost(ctx, newBlogPost("Newer", "newer", true)); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		published, err := store.GetAllBlogPosts(ctx, true)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(published) != 2 {
			t.Fatalf("expected 2 published posts, got %d", len(published))
		}
		if published[0].Slug != "newer" || published[1].Slug != "older" {
			t.Fatalf("expected newest-first ordering, got %q then %q", published[0].Slug, published[1].Slug)
		}

		all, err := store.GetAllBlogPosts(ctx, false)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected all 3 posts, got %d", len(all))
		}

		// Drafts stay addressable by slug at the storage layer; the HTTP layer
		// decides whether to expose them.
		got, err := store.GetBlogPostBySlug(ctx, "draft")
		if err != nil || got == nil || got.ID != draft.ID {
			t.Fatalf("expected draft by slug, got (%+v, %v)", got, err)
		}
	})
}

func TestBlogPublishedAtLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		post, err := store.CreateBlogPost(ctx, newBlogPost("Lifecycle", "lifecycle", false))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if post.PublishedAt != nil {
			t.Fatal("draft must not carry a publish timestamp")
		}

		published := true
		post, err = store.UpdateBlogPost(ctx, post.ID.Hex(), models.BlogPostUpdate{IsPublished: &published})
		if err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		if post.PublishedAt == nil {
			t.Fatal("publishing must stamp publishedAt")
		}

		unpublished := false
		post, err = store.UpdateBlogPost(ctx, post.ID.Hex(), models.BlogPostUpdate{IsPublished: &unpublished})
		if err != nil {
			t.Fatalf("unpublish failed: %v", err)
		}
		if post.PublishedAt != nil {
			t.Fatal("unpublishing must clear publishedAt")
		}
	})
}

func TestUserLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Storage) {
		ctx := context.Background()

		user, err := store.CreateUser(ctx, "admin", "hashed-password")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		_, err = store.CreateUser(ctx, "admin", "other")
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "username" {
			t.Fatalf("expected username validation error, got %v", err)
		}

		byName, err := store.GetUserByUsername(ctx, "admin")
		if err != nil || byName == nil || byName.ID != user.ID {
			t.Fatalf("lookup by username failed: (%+v, %v)", byName, err)
		}
		byID, err := store.GetUser(ctx, user.ID.Hex())
		if err != nil || byID == nil || byID.Username != "admin" {
			t.Fatalf("lookup by id failed: (%+v, %v)", byID, err)
		}
		missing, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil || missing != nil {
			t.Fatalf("expected (nil, nil) for unknown user, got (%+v, %v)", missing, err)
		}
	})
}
