package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-gateway/internal/domain"
)

func newGuardApp() *fiber.App {
	app := fiber.New()
	app.Use(NewRouteGuard(NewDecoder("")).Handle)

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/login", ok)
	app.Get("/signup", ok)
	app.Get("/verify-otp", ok)
	app.Get("/dashboard", ok)
	app.Get("/dashboard/admin", ok)
	app.Get("/about", ok)
	return app
}

func guardRequest(t *testing.T, app *fiber.App, path string, cookies map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return res
}

func assertRedirect(t *testing.T, res *http.Response, location string) {
	t.Helper()
	if res.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", res.StatusCode)
	}
	if got := res.Header.Get("Location"); got != location {
		t.Fatalf("location = %q, want %q", got, location)
	}
}

func assertAllowed(t *testing.T, res *http.Response) {
	t.Helper()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
}

func sessionToken(t *testing.T, role domain.Role) string {
	return signToken(t, "backend-key", role, time.Hour)
}

func TestGuardRoot(t *testing.T) {
	app := newGuardApp()

	assertRedirect(t, guardRequest(t, app, "/", nil), "/login")
	assertRedirect(t, guardRequest(t, app, "/", map[string]string{
		RefreshTokenCookie: "some-refresh-token",
	}), "/dashboard")
}

func TestGuardAuthPages(t *testing.T) {
	app := newGuardApp()

	assertAllowed(t, guardRequest(t, app, "/login", nil))
	assertAllowed(t, guardRequest(t, app, "/signup", nil))

	session := map[string]string{AccessTokenCookie: sessionToken(t, domain.RoleUser)}
	assertRedirect(t, guardRequest(t, app, "/login", session), "/dashboard")
	assertRedirect(t, guardRequest(t, app, "/signup", session), "/dashboard")
}

func TestGuardVerificationPage(t *testing.T) {
	app := newGuardApp()

	// No pending signup: back to signup.
	assertRedirect(t, guardRequest(t, app, "/verify-otp", nil), "/signup")

	ticket := map[string]string{VerificationCookie: NewTicket("u1", "a@b.c").Encode()}
	assertAllowed(t, guardRequest(t, app, "/verify-otp", ticket))

	// Already authenticated: nothing left to verify.
	assertRedirect(t, guardRequest(t, app, "/verify-otp", map[string]string{
		VerificationCookie: NewTicket("u1", "a@b.c").Encode(),
		AccessTokenCookie:  sessionToken(t, domain.RoleUser),
	}), "/dashboard")
}

func TestGuardProtectedPages(t *testing.T) {
	app := newGuardApp()

	assertRedirect(t, guardRequest(t, app, "/dashboard", nil), "/login?redirect=%2Fdashboard")

	session := map[string]string{AccessTokenCookie: sessionToken(t, domain.RoleUser)}
	assertAllowed(t, guardRequest(t, app, "/dashboard", session))
}

func TestGuardAdminPages(t *testing.T) {
	app := newGuardApp()

	// Anonymous: to login, preserving the requested path.
	assertRedirect(t, guardRequest(t, app, "/dashboard/admin", nil),
		"/login?redirect=%2Fdashboard%2Fadmin")

	// Plain users never reach the admin area.
	assertRedirect(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: sessionToken(t, domain.RoleUser),
	}), "/dashboard")

	assertAllowed(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: sessionToken(t, domain.RoleAdmin),
	}))
	assertAllowed(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: sessionToken(t, domain.RoleSuperadmin),
	}))
}

func TestGuardAdminFailsClosedOnDecodeFailure(t *testing.T) {
	app := newGuardApp()

	// Session presence via refresh token, but no decodable access token:
	// role unknown means no admin access.
	assertRedirect(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		RefreshTokenCookie: "opaque-refresh",
	}), "/dashboard")

	assertRedirect(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: "garbage-token",
	}), "/dashboard")
}

func TestGuardVerifiedModeRejectsForgedRole(t *testing.T) {
	app := fiber.New()
	app.Use(NewRouteGuard(NewDecoder("backend-key")).Handle)
	app.Get("/dashboard/admin", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Signed with the right key: allowed through.
	assertAllowed(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: signToken(t, "backend-key", domain.RoleSuperadmin, time.Hour),
	}))

	// Superadmin claim under the wrong key is a forgery.
	assertRedirect(t, guardRequest(t, app, "/dashboard/admin", map[string]string{
		AccessTokenCookie: signToken(t, "attacker-key", domain.RoleSuperadmin, time.Hour),
	}), "/dashboard")
}

func TestGuardIgnoresOtherPaths(t *testing.T) {
	app := newGuardApp()
	assertAllowed(t, guardRequest(t, app, "/about", nil))
}

func TestClassifyPath(t *testing.T) {
	cases := map[string]pathClass{
		"/":                      classRoot,
		"/login":                 classAuthOnly,
		"/signup":                classAuthOnly,
		"/verify-otp":            classVerification,
		"/dashboard":             classProtected,
		"/dashboard/profile":     classProtected,
		"/dashboard/admin":       classAdmin,
		"/dashboard/admin/users": classAdmin,
		"/dashboardx":            classOther,
		"/metrics":               classOther,
		"/auth/login":            classOther,
	}
	for path, want := range cases {
		if got := classifyPath(path); got != want {
			t.Fatalf("classifyPath(%q) = %d, want %d", path, got, want)
		}
	}
}
