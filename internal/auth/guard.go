package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Navigation targets the guard redirects to.
const (
	LoginPath     = "/login"
	SignupPath    = "/signup"
	VerifyPath    = "/verify-otp"
	DashboardPath = "/dashboard"
	AdminPath     = "/dashboard/admin"
)

type pathClass int

const (
	classOther pathClass = iota
	classRoot
	classAuthOnly
	classVerification
	classAdmin
	classProtected
)

func classifyPath(path string) pathClass {
	switch path {
	case "/":
		return classRoot
	case LoginPath, SignupPath:
		return classAuthOnly
	case VerifyPath:
		return classVerification
	}
	if path == AdminPath || strings.HasPrefix(path, AdminPath+"/") {
		return classAdmin
	}
	if path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/") {
		return classProtected
	}
	return classOther
}

// RouteGuard decides allow-or-redirect for every navigation before any page
// logic runs. It reads the request's own cookie snapshot only, never mutates
// cookies, and never fails: a claim decode error degrades to "role unknown",
// which is a denial on admin paths.
type RouteGuard struct {
	decoder *Decoder
}

// NewRouteGuard builds the guard around a claims decoder.
func NewRouteGuard(decoder *Decoder) *RouteGuard {
	return &RouteGuard{decoder: decoder}
}

// Handle implements the navigation contract. Rules are evaluated in
// precedence order; the first matching classification wins.
func (g *RouteGuard) Handle(c *fiber.Ctx) error {
	hasSession := HasSession(c)

	switch classifyPath(c.Path()) {
	case classRoot:
		if hasSession {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Redirect(LoginPath, fiber.StatusFound)

	case classAuthOnly:
		if hasSession {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()

	case classVerification:
		if c.Cookies(VerificationCookie) == "" {
			return c.Redirect(SignupPath, fiber.StatusFound)
		}
		if hasSession {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()

	case classAdmin:
		if !hasSession {
			return g.redirectToLogin(c)
		}
		claims, err := g.decoder.Decode(c.Cookies(AccessTokenCookie))
		if err != nil || !claims.Role.IsAdministrative() {
			// Role unknown or insufficient: fail closed onto the
			// generic dashboard rather than erroring.
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()

	case classProtected:
		if !hasSession {
			return g.redirectToLogin(c)
		}
		return c.Next()
	}

	return c.Next()
}

func (g *RouteGuard) redirectToLogin(c *fiber.Ctx) error {
	target := LoginPath + "?redirect=" + url.QueryEscape(c.Path())
	return c.Redirect(target, fiber.StatusFound)
}
