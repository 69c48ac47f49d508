package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-gateway/internal/config"
)

// Cookie names owned by the gateway.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	VerificationCookie = "otpVerificationToken"
)

// CookieManager writes and clears the session cookie jar. It is the only
// component that mutates cookies; the guard and decoder read them only.
type CookieManager struct {
	cfg config.CookieConfig
}

// NewCookieManager builds a manager with the configured cookie policy.
func NewCookieManager(cfg config.CookieConfig) *CookieManager {
	return &CookieManager{cfg: cfg}
}

// IssueSession writes both token cookies.
func (m *CookieManager) IssueSession(c *fiber.Ctx, accessToken, refreshToken string) {
	m.set(c, AccessTokenCookie, accessToken, m.cfg.AccessTTL())
	m.set(c, RefreshTokenCookie, refreshToken, m.cfg.RefreshTTL())
}

// ClearSession deletes both token cookies. Missing cookies are a no-op.
func (m *CookieManager) ClearSession(c *fiber.Ctx) {
	m.expire(c, AccessTokenCookie)
	m.expire(c, RefreshTokenCookie)
}

// IssueTicket writes the pending-verification ticket cookie.
func (m *CookieManager) IssueTicket(c *fiber.Ctx, ticket Ticket) {
	m.set(c, VerificationCookie, ticket.Encode(), m.cfg.VerificationTTL())
}

// ClearTicket deletes the pending-verification ticket cookie.
func (m *CookieManager) ClearTicket(c *fiber.Ctx) {
	m.expire(c, VerificationCookie)
}

// AccessToken returns the raw access token cookie value, if any.
func (m *CookieManager) AccessToken(c *fiber.Ctx) string {
	return c.Cookies(AccessTokenCookie)
}

// HasSession reports whether either token cookie is present on the request.
func HasSession(c *fiber.Ctx) bool {
	return c.Cookies(AccessTokenCookie) != "" || c.Cookies(RefreshTokenCookie) != ""
}

func (m *CookieManager) set(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: m.cfg.SameSite,
	})
}

func (m *CookieManager) expire(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: m.cfg.SameSite,
	})
}
