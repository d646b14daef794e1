package storage

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/emphz/rfqcart/pkg/types"
)

// CookieMaxAge is the lifetime of the cart cookie.
const CookieMaxAge = 30 * 24 * time.Hour

// CartCookie builds the cart cookie for value: percent-encoded, scoped to the
// whole site and expiring CookieMaxAge after now.
func CartCookie(value string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     types.CartKey,
		Value:    url.PathEscape(value),
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		Expires:  now.Add(CookieMaxAge).UTC(),
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieValue decodes the cart value held by c.
func CookieValue(c *http.Cookie) (string, error) {
	if c == nil || c.Value == "" {
		return "", types.ErrNoValue
	}
	v, err := url.PathUnescape(c.Value)
	if err != nil {
		return "", fmt.Errorf("decode cookie value: %w", err)
	}
	return v, nil
}

// CookieChannel keeps the cart cookie in a jar file as a single Set-Cookie
// line, so the value is readable by anything that understands cookies.
type CookieChannel struct {
	path string
	now  func() time.Time
}

// NewCookieChannel returns a channel backed by the jar file at path.
func NewCookieChannel(path string) *CookieChannel {
	return &CookieChannel{path: path, now: time.Now}
}

// Name implements types.Channel.
func (c *CookieChannel) Name() string { return "cookie" }

// Read implements types.Channel. An expired cookie holds no value.
func (c *CookieChannel) Read() (string, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", types.ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", c.path, err)
	}

	line := strings.TrimSpace(string(data))
	if line == "" {
		return "", types.ErrNoValue
	}
	cookie, err := http.ParseSetCookie(line)
	if err != nil {
		return "", fmt.Errorf("parse cookie: %w", err)
	}
	if cookie.Name != types.CartKey {
		return "", types.ErrNoValue
	}
	if !cookie.Expires.IsZero() && !c.now().Before(cookie.Expires) {
		return "", types.ErrNoValue
	}
	return CookieValue(cookie)
}

// Write implements types.Channel.
func (c *CookieChannel) Write(value string) error {
	line := CartCookie(value, c.now()).String()
	if line == "" {
		return fmt.Errorf("write cookie: invalid cookie")
	}
	return writeFileAtomic(c.path, []byte(line+"\n"))
}
