package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "auth-token"

// Cookie describes how the session cookie is written.
type Cookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// NewCookie returns cookie settings with defaults applied.
func NewCookie(name string, ttl time.Duration, secure bool) Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Cookie{Name: name, TTL: ttl, Secure: secure}
}

// Read returns the session token sent with the request, if any.
func (ck Cookie) Read(c *gin.Context) (string, bool) {
	value, err := c.Cookie(ck.Name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set writes the session token.
func (ck Cookie) Set(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     ck.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ck.TTL.Seconds()),
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear overwrites the session cookie with an empty value that has already expired.
func (ck Cookie) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     ck.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
