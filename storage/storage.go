package storage

import (
	"context"
	"errors"

	"portfolio-api/models"
)

// ErrUnavailable is returned when the active backend cannot complete an
// operation, e.g. a lost database connection. The route layer maps it to a
// 503. Not-found is never an error: lookups return (nil, nil) and deletes
// return (false, nil) for unknown ids.
var ErrUnavailable = errors.New("storage backend unavailable")

// Storage is the backend-agnostic contract the route layer programs against.
// Two implementations exist: MongoStorage and MemoryStorage. The backend is
// selected once at startup and fixed for the process lifetime; callers must
// observe identical ordering, merge and error semantics from both.
//
// List operations return records sorted ascending by displayOrder with ties
// broken by insertion order, and an empty slice (never an error) when no
// records exist.
type Storage interface {
	// Users. Username lookup is a case-sensitive exact match on the trimmed
	// string. CreateUser stores the password value as given; hashing is the
	// caller's responsibility.
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)

	// About. At most one document ever exists; UpsertAbout merges into the
	// existing record or creates the first one, never a second.
	GetAbout(ctx context.Context) (*models.AboutData, error)
	UpsertAbout(ctx context.Context, in models.AboutInput) (*models.AboutData, error)

	// Certifications.
	GetAllCertifications(ctx context.Context) ([]models.Certification, error)
	GetCertification(ctx context.Context, id string) (*models.Certification, error)
	CreateCertification(ctx context.Context, in models.Certification) (*models.Certification, error)
	UpdateCertification(ctx context.Context, id string, upd models.CertificationUpdate) (*models.Certification, error)
	DeleteCertification(ctx context.Context, id string) (bool, error)

	// Hackathons.
	GetAllHackathons(ctx context.Context) ([]models.Hackathon, error)
	GetHackathon(ctx context.Context, id string) (*models.Hackathon, error)
	CreateHackathon(ctx context.Context, in models.Hackathon) (*models.Hackathon, error)
	UpdateHackathon(ctx context.Context, id string, upd models.HackathonUpdate) (*models.Hackathon, error)
	DeleteHackathon(ctx context.Context, id string) (bool, error)

	// Projects.
	GetAllProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, in models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) (bool, error)

	// Blog posts. Slug is unique; creating or updating into a taken slug
	// fails with a models.ValidationError. Listing is sorted newest first;
	// publishedOnly restricts to published posts for the public surface.
	GetAllBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	CreateBlogPost(ctx context.Context, in models.BlogPost) (*models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, upd models.BlogPostUpdate) (*models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) (bool, error)
}
