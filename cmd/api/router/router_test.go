package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/models"
	"portfolio-api/storage"
)

type testAPI struct {
	router *gin.Engine
	store  *storage.MemoryStorage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStorage()
	hashed, err := auth.HashPassword("Atharv@1136")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if _, err := store.CreateUser(context.Background(), "admin", hashed); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	sessions := auth.NewMemorySessionStore(time.Hour)
	cookies := auth.NewCookieManager("test-secret", time.Hour, false)
	return &testAPI{router: New(store, sessions, cookies), store: store}
}

func (a *testAPI) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func (a *testAPI) login(t *testing.T) *http.Cookie {
	t.Helper()
	recorder := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "Atharv@1136",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", recorder.Code, recorder.Body.String())
	}
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	recorder := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)

	testCases := []struct {
		name string
		body map[string]string
		want int
	}{
		{name: "wrong password", body: map[string]string{"username": "admin", "password": "nope"}, want: http.StatusUnauthorized},
		{name: "unknown user", body: map[string]string{"username": "ghost", "password": "nope"}, want: http.StatusUnauthorized},
		{name: "missing fields", body: map[string]string{"username": "admin"}, want: http.StatusBadRequest},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := api.do(http.MethodPost, "/api/auth/login", testCase.body)
			assert.Equal(t, testCase.want, recorder.Code)
			assert.Empty(t, recorder.Result().Cookies(), "failed login must not set a cookie")
		})
	}
}

func TestLoginMeLogoutFlow(t *testing.T) {
	api := newTestAPI(t)

	// Without a session the identity endpoint refuses.
	recorder := api.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	cookie := api.login(t)

	recorder = api.do(http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var identity map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &identity); err != nil {
		t.Fatalf("failed to decode identity: %v", err)
	}
	assert.Equal(t, "admin", identity["username"])
	assert.NotEmpty(t, identity["id"])

	recorder = api.do(http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// The server-side session is gone; the old cookie no longer works.
	recorder = api.do(http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	payload := map[string]any{
		"company": "Acme", "title": "Cert", "issued": "Jan 2025", "platform": "Coursera",
		"icon": "aws", "cardColor": "#000", "buttonColor": "#111", "titleColor": "#222",
		"textColor": "#333", "certImageUrl": "https://img.example.com/c.png",
	}

	recorder := api.do(http.MethodPost, "/api/admin/certifications", payload)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// A forged cookie must not get through either.
	forged := &http.Cookie{Name: auth.SessionCookieName, Value: "session-123.forged"}
	recorder = api.do(http.MethodPost, "/api/admin/certifications", payload, forged)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Nothing was written.
	all, err := api.store.GetAllCertifications(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	assert.Empty(t, all, "rejected requests must not reach storage")
}

func TestCertificationAdminCRUDOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	cookie := api.login(t)

	payload := map[string]any{
		"company": "Acme", "title": "AWS SAA", "issued": "Jan 2025", "platform": "Coursera",
		"icon": "aws", "cardColor": "#000", "buttonColor": "#111", "titleColor": "#222",
		"textColor": "#333", "certImageUrl": "https://img.example.com/c.png", "displayOrder": 1,
	}
	recorder := api.do(http.MethodPost, "/api/admin/certifications", payload, cookie)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var created models.Certification
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created record: %v", err)
	}
	assert.False(t, created.ID.IsZero())

	// Invalid payload is rejected with a field-level message.
	recorder = api.do(http.MethodPost, "/api/admin/certifications", map[string]any{"company": "Acme"}, cookie)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "title")

	// Public list reflects the write without auth.
	recorder = api.do(http.MethodGet, "/api/certifications", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var listed []models.Certification
	if err := json.Unmarshal(recorder.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	assert.Len(t, listed, 1)

	recorder = api.do(http.MethodPut, "/api/admin/certifications/"+created.ID.Hex(), map[string]any{"title": "AWS SAP"}, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "AWS SAP")

	recorder = api.do(http.MethodPut, "/api/admin/certifications/665f1f77bcf86cd799439011", map[string]any{"title": "x"}, cookie)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = api.do(http.MethodDelete, "/api/admin/certifications/"+created.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
	recorder = api.do(http.MethodDelete, "/api/admin/certifications/"+created.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAboutUpsertOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	cookie := api.login(t)

	recorder := api.do(http.MethodGet, "/api/about", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	payload := map[string]any{
		"bio": "I build things", "education": "B.Tech", "languages": "English",
		"skills": []string{"Go"}, "tools": []string{"Docker"},
	}
	recorder = api.do(http.MethodPut, "/api/admin/about", payload, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = api.do(http.MethodGet, "/api/about", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "I build things")
	assert.Contains(t, recorder.Body.String(), `"updatedAt"`)
}

func TestAdminListRoutes(t *testing.T) {
	api := newTestAPI(t)
	cookie := api.login(t)

	for _, path := range []string{
		"/api/admin/certifications",
		"/api/admin/hackathons",
		"/api/admin/projects",
	} {
		recorder := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)

		recorder = api.do(http.MethodGet, path, nil, cookie)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
		assert.Equal(t, "[]", recorder.Body.String(), path)
	}
}

func TestPublicBlogSurface(t *testing.T) {
	api := newTestAPI(t)
	cookie := api.login(t)

	post := func(title, slug string, published bool) map[string]any {
		return map[string]any{
			"title": title, "slug": slug, "content": "body", "excerpt": "summary",
			"coverImage": "https://img.example.com/cover.png", "author": "Atharv",
			"isPublished": published,
		}
	}

	recorder := api.do(http.MethodPost, "/api/admin/blogs", post("Published", "published-post", true), cookie)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	recorder = api.do(http.MethodPost, "/api/admin/blogs", post("Draft", "draft-post", false), cookie)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	// Duplicate slug is a validation error.
	recorder = api.do(http.MethodPost, "/api/admin/blogs", post("Dup", "published-post", false), cookie)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "slug")

	// Public listing only shows published posts.
	recorder = api.do(http.MethodGet, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var listed []models.BlogPost
	if err := json.Unmarshal(recorder.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	assert.Len(t, listed, 1)
	assert.Equal(t, "published-post", listed[0].Slug)

	// Drafts 404 on the public slug route; the admin listing still has them.
	recorder = api.do(http.MethodGet, "/api/blogs/draft-post", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	recorder = api.do(http.MethodGet, "/api/blogs/published-post", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = api.do(http.MethodGet, "/api/admin/blogs", nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var adminListed []models.BlogPost
	if err := json.Unmarshal(recorder.Body.Bytes(), &adminListed); err != nil {
		t.Fatalf("failed to decode admin list: %v", err)
	}
	assert.Len(t, adminListed, 2)
}
