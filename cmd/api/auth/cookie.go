package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie that carries the signed session ID.
const SessionCookieName = "portfolio_session"

var (
	ErrNoSessionCookie    = errors.New("missing_session_cookie")
	ErrBadCookieSignature = errors.New("invalid_session_cookie")
)

// CookieManager signs session IDs into cookie values and verifies them on the
// way back in, so a tampered cookie never reaches the session store.
type CookieManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewCookieManager(secret string, ttl time.Duration, secure bool) *CookieManager {
	return &CookieManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (m *CookieManager) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode produces the cookie value for a session ID: "<sid>.<signature>".
func (m *CookieManager) Encode(sid string) string {
	return sid + "." + m.sign(sid)
}

// Decode verifies a cookie value and returns the embedded session ID.
func (m *CookieManager) Decode(value string) (string, error) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 {
		return "", ErrBadCookieSignature
	}
	sid, sig := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(m.sign(sid))) {
		return "", ErrBadCookieSignature
	}
	return sid, nil
}

// SetSessionCookie attaches the signed session cookie to the response.
// HTTP-only and SameSite=Lax always; Secure only when forced via config.
func (m *CookieManager) SetSessionCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, m.Encode(sid), int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearSessionCookie expires the session cookie on the client.
func (m *CookieManager) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// SessionIDFromRequest extracts and verifies the session ID from the request
// cookie.
func (m *CookieManager) SessionIDFromRequest(c *gin.Context) (string, error) {
	value, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}
	return m.Decode(value)
}
