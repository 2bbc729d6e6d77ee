package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/http/handlers"
	"github.com/dulagbps/records-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Residents      *handlers.ResidentsHandler
	Cases          *handlers.CasesHandler
	Events         *handlers.EventsHandler
	Announcements  *handlers.AnnouncementsHandler
	Activities     *handlers.ActivitiesHandler
	AuthMiddleware *auth.Middleware
	UploadsDir     string
}

// RegisterRoutes wires HTTP routes. Reads on public records stay open;
// every mutation goes through the authentication gate and staff management
// additionally through the admin gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	protect := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin()

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.UploadsDir != "" {
		app.Static("/uploads", cfg.UploadsDir)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/login-qr", cfg.Auth.LoginQR)
	authGroup.Get("/validate", protect, cfg.Auth.Validate)
	authGroup.Post("/refresh", protect, cfg.Auth.Refresh)

	residents := api.Group("/residents")
	residents.Get("/statistics", cfg.Residents.Statistics)
	residents.Get("/", cfg.Residents.List)
	residents.Get("/:id", cfg.Residents.Get)
	residents.Post("/", protect, cfg.Residents.Create)
	residents.Put("/:id", protect, cfg.Residents.Update)
	residents.Delete("/:id", protect, cfg.Residents.Delete)

	cases := api.Group("/cases")
	cases.Get("/", cfg.Cases.List)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Post("/", protect, cfg.Cases.Create)
	cases.Put("/:id", protect, cfg.Cases.Update)
	cases.Delete("/:id", protect, cfg.Cases.Delete)

	eventsGroup := api.Group("/events")
	eventsGroup.Get("/upcoming", cfg.Events.Upcoming)
	eventsGroup.Get("/", cfg.Events.List)
	eventsGroup.Get("/:id", cfg.Events.Get)
	eventsGroup.Post("/", protect, cfg.Events.Create)
	eventsGroup.Put("/:id", protect, cfg.Events.Update)
	eventsGroup.Delete("/:id", protect, cfg.Events.Delete)

	announcements := api.Group("/announcements")
	announcements.Get("/", cfg.Announcements.List)
	announcements.Get("/:id", cfg.Announcements.Get)
	announcements.Post("/", protect, cfg.Announcements.Create)
	announcements.Put("/:id", protect, cfg.Announcements.Update)
	announcements.Delete("/:id", protect, cfg.Announcements.Delete)

	staff := api.Group("/staff", protect)
	staff.Get("/", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Post("/", admin, cfg.Staff.Create)
	staff.Put("/:id", admin, cfg.Staff.Update)
	staff.Delete("/:id", admin, cfg.Staff.Delete)
	staff.Post("/:id/qr", admin, cfg.Staff.RegenerateQR)

	activities := api.Group("/activities", protect)
	activities.Get("/recent", cfg.Activities.Recent)
	activities.Delete("/cleanup", cfg.Activities.Cleanup)

	api.Post("/contact", cfg.Activities.Contact)
}
