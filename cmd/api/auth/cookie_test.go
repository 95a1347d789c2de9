package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCookieEncodeDecodeRoundTrip(t *testing.T) {
	m := NewCookieManager("test-secret", time.Hour, false)

	value := m.Encode("session-123")
	if !strings.HasPrefix(value, "session-123.") {
		t.Fatalf("unexpected cookie value %q", value)
	}

	sid, err := m.Decode(value)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if sid != "session-123" {
		t.Fatalf("expected session-123, got %q", sid)
	}
}

func TestCookieDecodeRejectsTampering(t *testing.T) {
	m := NewCookieManager("test-secret", time.Hour, false)
	other := NewCookieManager("another-secret", time.Hour, false)

	testCases := []struct {
		name  string
		value string
	}{
		{name: "no separator", value: "session-123"},
		{name: "empty session id", value: "." + m.sign("")},
		{name: "swapped session id", value: "session-456." + strings.SplitN(m.Encode("session-123"), ".", 2)[1]},
		{name: "signed with a different secret", value: other.Encode("session-123")},
		{name: "garbage signature", value: "session-123.AAAA"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := m.Decode(testCase.value); !errors.Is(err, ErrBadCookieSignature) {
				t.Fatalf("expected ErrBadCookieSignature, got %v", err)
			}
		})
	}
}

func TestSessionIDFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookieManager("test-secret", time.Hour, false)

	ginCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ginCtx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.SessionIDFromRequest(ginCtx); !errors.Is(err, ErrNoSessionCookie) {
		t.Fatalf("expected ErrNoSessionCookie, got %v", err)
	}

	ginCtx, _ = gin.CreateTestContext(httptest.NewRecorder())
	ginCtx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ginCtx.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: m.Encode("session-123")})
	sid, err := m.SessionIDFromRequest(ginCtx)
	if err != nil {
		t.Fatalf("expected valid cookie to decode, got %v", err)
	}
	if sid != "session-123" {
		t.Fatalf("expected session-123, got %q", sid)
	}
}

func TestSetSessionCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookieManager("test-secret", time.Hour, false)

	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	m.SetSessionCookie(ginCtx, "session-123")

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Fatalf("expected cookie %q, got %q", SessionCookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("expected max-age %d, got %d", int(time.Hour.Seconds()), cookie.MaxAge)
	}
}
