package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/models"
)

// MemoryStorage implements Storage with process-local maps. It is the
// fallback backend for environments with no configured database; data does
// not survive a restart. Unlike the Mongo backend it can never return
// ErrUnavailable.
//
// Each collection carries its own lock so concurrent requests against
// different entity kinds never contend.
type MemoryStorage struct {
	usersMu sync.RWMutex
	users   map[string]models.User

	aboutMu sync.Mutex
	about   *models.AboutData

	certsMu  sync.RWMutex
	certs    map[string]memEntry[models.Certification]
	certsSeq int64

	hacksMu  sync.RWMutex
	hacks    map[string]memEntry[models.Hackathon]
	hacksSeq int64

	projectsMu  sync.RWMutex
	projects    map[string]memEntry[models.Project]
	projectsSeq int64

	postsMu  sync.RWMutex
	posts    map[string]memEntry[models.BlogPost]
	postsSeq int64
}

// memEntry tags a record with its insertion sequence so list results can
// break displayOrder ties in insertion order, matching the _id tiebreak of
// the Mongo backend.
type memEntry[T any] struct {
	rec T
	seq int64
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[string]models.User),
		certs:    make(map[string]memEntry[models.Certification]),
		hacks:    make(map[string]memEntry[models.Hackathon]),
		projects: make(map[string]memEntry[models.Project]),
		posts:    make(map[string]memEntry[models.BlogPost]),
	}
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// --- Users ---

func (s *MemoryStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	search := strings.TrimSpace(username)
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	for _, u := range s.users {
		if u.Username == search {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, &models.ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return nil, &models.ValidationError{Field: "password", Message: "is required"}
	}
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return nil, &models.ValidationError{Field: "username", Message: "already taken"}
		}
	}
	user := models.User{
		ID:        newID(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
	s.users[user.ID.Hex()] = user
	return &user, nil
}

// --- About ---

func (s *MemoryStorage) GetAbout(ctx context.Context) (*models.AboutData, error) {
	s.aboutMu.Lock()
	defer s.aboutMu.Unlock()
	if s.about == nil {
		return nil, nil
	}
	about := *s.about
	return &about, nil
}

func (s *MemoryStorage) UpsertAbout(ctx context.Context, in models.AboutInput) (*models.AboutData, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.aboutMu.Lock()
	defer s.aboutMu.Unlock()
	if s.about == nil {
		s.about = &models.AboutData{ID: newID()}
	}
	s.about.Bio = in.Bio
	s.about.Education = in.Education
	s.about.Languages = in.Languages
	s.about.Skills = append([]string(nil), in.Skills...)
	s.about.Tools = append([]string(nil), in.Tools...)
	s.about.UpdatedAt = time.Now()
	about := *s.about
	return &about, nil
}

// --- Certifications ---

func (s *MemoryStorage) GetAllCertifications(ctx context.Context) ([]models.Certification, error) {
	s.certsMu.RLock()
	defer s.certsMu.RUnlock()
	entries := make([]memEntry[models.Certification], 0, len(s.certs))
	for _, e := range s.certs {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rec.DisplayOrder != entries[j].rec.DisplayOrder {
			return entries[i].rec.DisplayOrder < entries[j].rec.DisplayOrder
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]models.Certification, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (s *MemoryStorage) GetCertification(ctx context.Context, id string) (*models.Certification, error) {
	s.certsMu.RLock()
	defer s.certsMu.RUnlock()
	if e, ok := s.certs[id]; ok {
		rec := e.rec
		return &rec, nil
	}
	return nil, nil
}

func (s *MemoryStorage) CreateCertification(ctx context.Context, in models.Certification) (*models.Certification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now
	s.certsMu.Lock()
	defer s.certsMu.Unlock()
	s.certsSeq++
	s.certs[in.ID.Hex()] = memEntry[models.Certification]{rec: in, seq: s.certsSeq}
	return &in, nil
}

func (s *MemoryStorage) UpdateCertification(ctx context.Context, id string, upd models.CertificationUpdate) (*models.Certification, error) {
	s.certsMu.Lock()
	defer s.certsMu.Unlock()
	e, ok := s.certs[id]
	if !ok {
		return nil, nil
	}
	upd.ApplyTo(&e.rec)
	e.rec.UpdatedAt = time.Now()
	s.certs[id] = e
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStorage) DeleteCertification(ctx context.Context, id string) (bool, error) {
	s.certsMu.Lock()
	defer s.certsMu.Unlock()
	if _, ok := s.certs[id]; !ok {
		return false, nil
	}
	delete(s.certs, id)
	return true, nil
}

// --- Hackathons ---

func (s *MemoryStorage) GetAllHackathons(ctx context.Context) ([]models.Hackathon, error) {
	s.hacksMu.RLock()
	defer s.hacksMu.RUnlock()
	entries := make([]memEntry[models.Hackathon], 0, len(s.hacks))
	for _, e := range s.hacks {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rec.DisplayOrder != entries[j].rec.DisplayOrder {
			return entries[i].rec.DisplayOrder < entries[j].rec.DisplayOrder
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]models.Hackathon, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (s *MemoryStorage) GetHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	s.hacksMu.RLock()
	defer s.hacksMu.RUnlock()
	if e, ok := s.hacks[id]; ok {
		rec := e.rec
		return &rec, nil
	}
	return nil, nil
}

func (s *MemoryStorage) CreateHackathon(ctx context.Context, in models.Hackathon) (*models.Hackathon, error) {
	if in.Side == "" {
		in.Side = models.SideLeft
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now
	s.hacksMu.Lock()
	defer s.hacksMu.Unlock()
	s.hacksSeq++
	s.hacks[in.ID.Hex()] = memEntry[models.Hackathon]{rec: in, seq: s.hacksSeq}
	return &in, nil
}

func (s *MemoryStorage) UpdateHackathon(ctx context.Context, id string, upd models.HackathonUpdate) (*models.Hackathon, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	s.hacksMu.Lock()
	defer s.hacksMu.Unlock()
	e, ok := s.hacks[id]
	if !ok {
		return nil, nil
	}
	upd.ApplyTo(&e.rec)
	e.rec.UpdatedAt = time.Now()
	s.hacks[id] = e
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStorage) DeleteHackathon(ctx context.Context, id string) (bool, error) {
	s.hacksMu.Lock()
	defer s.hacksMu.Unlock()
	if _, ok := s.hacks[id]; !ok {
		return false, nil
	}
	delete(s.hacks, id)
	return true, nil
}

// --- Projects ---

func (s *MemoryStorage) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	entries := make([]memEntry[models.Project], 0, len(s.projects))
	for _, e := range s.projects {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rec.DisplayOrder != entries[j].rec.DisplayOrder {
			return entries[i].rec.DisplayOrder < entries[j].rec.DisplayOrder
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]models.Project, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (s *MemoryStorage) GetProject(ctx context.Context, id string) (*models.Project, error) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	if e, ok := s.projects[id]; ok {
		rec := e.rec
		return &rec, nil
	}
	return nil, nil
}

func (s *MemoryStorage) CreateProject(ctx context.Context, in models.Project) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Technologies == nil {
		in.Technologies = []models.Technology{}
	}
	now := time.Now()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now
	s.projectsMu.Lock()
	defer s.projectsMu.Unlock()
	s.projectsSeq++
	s.projects[in.ID.Hex()] = memEntry[models.Project]{rec: in, seq: s.projectsSeq}
	return &in, nil
}

func (s *MemoryStorage) UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (*models.Project, error) {
	s.projectsMu.Lock()
	defer s.projectsMu.Unlock()
	e, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	upd.ApplyTo(&e.rec)
	e.rec.UpdatedAt = time.Now()
	s.projects[id] = e
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStorage) DeleteProject(ctx context.Context, id string) (bool, error) {
	s.projectsMu.Lock()
	defer s.projectsMu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}

// --- Blog posts ---

func (s *MemoryStorage) GetAllBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	entries := make([]memEntry[models.BlogPost], 0, len(s.posts))
	for _, e := range s.posts {
		if publishedOnly && !e.rec.IsPublished {
			continue
		}
		entries = append(entries, e)
	}
	// Newest first, matching the created_at desc sort of the Mongo backend.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq > entries[j].seq
	})
	out := make([]models.BlogPost, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (s *MemoryStorage) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	if e, ok := s.posts[id]; ok {
		rec := e.rec
		return &rec, nil
	}
	return nil, nil
}

func (s *MemoryStorage) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	for _, e := range s.posts {
		if e.rec.Slug == slug {
			rec := e.rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *MemoryStorage) CreateBlogPost(ctx context.Context, in models.BlogPost) (*models.BlogPost, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	for _, e := range s.posts {
		if e.rec.Slug == in.Slug {
			return nil, &models.ValidationError{Field: "slug", Message: "already in use"}
		}
	}
	now := time.Now()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.SEOKeywords == nil {
		in.SEOKeywords = []string{}
	}
	if in.IsPublished && in.PublishedAt == nil {
		in.PublishedAt = &now
	}
	s.postsSeq++
	s.posts[in.ID.Hex()] = memEntry[models.BlogPost]{rec: in, seq: s.postsSeq}
	return &in, nil
}

func (s *MemoryStorage) UpdateBlogPost(ctx context.Context, id string, upd models.BlogPostUpdate) (*models.BlogPost, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	e, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	if upd.Slug != nil && *upd.Slug != e.rec.Slug {
		for other, oe := range s.posts {
			if other != id && oe.rec.Slug == *upd.Slug {
				return nil, &models.ValidationError{Field: "slug", Message: "already in use"}
			}
		}
	}
	wasPublished := e.rec.IsPublished
	upd.ApplyTo(&e.rec)
	now := time.Now()
	e.rec.UpdatedAt = now
	if !wasPublished && e.rec.IsPublished && e.rec.PublishedAt == nil {
		e.rec.PublishedAt = &now
	}
	if wasPublished && !e.rec.IsPublished {
		e.rec.PublishedAt = nil
	}
	s.posts[id] = e
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStorage) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}
