package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/account-gateway/internal/api/http/handlers"
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Pages   *handlers.PagesHandler
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Users   *handlers.UsersHandler
	Guard   *auth.RouteGuard
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes. The route guard runs on every request
// before any page or action logic; non-navigation paths classify as
// "other" and pass through untouched.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Use(cfg.Guard.Handle)

	app.Get(auth.LoginPath, cfg.Pages.Login)
	app.Get(auth.SignupPath, cfg.Pages.Signup)
	app.Get(auth.VerifyPath, cfg.Pages.VerifyOTP)
	app.Get(auth.DashboardPath, cfg.Pages.Dashboard)
	app.Get(auth.DashboardPath+"/profile", cfg.Pages.Profile)
	app.Get(auth.AdminPath, cfg.Pages.Admin)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/resend-otp", cfg.Auth.ResendOTP)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := app.Group("/users")
	users.Get("/profile/me", cfg.Profile.Me)
	users.Patch("/profile/me", cfg.Profile.Update)
	users.Post("/profile/email/request", cfg.Profile.RequestEmailChange)
	users.Post("/profile/email/verify", cfg.Profile.VerifyEmailChange)
	users.Get("/", cfg.Users.List)
	users.Patch("/:id/role", cfg.Users.ChangeRole)
	users.Delete("/:id", cfg.Users.Delete)
}
