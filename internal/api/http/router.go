package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gamification-service/internal/api/http/handlers"
	"github.com/spec-kit/gamification-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Events         *handlers.EventsHandler
	Profile        *handlers.ProfileHandler
	Leaderboard    *handlers.LeaderboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// lifecycle ingest, called service-to-service by the ticketing subsystem
	internalEvents := app.Group("/internal/v1/events")
	internalEvents.Post("/ticket-created", cfg.Events.TicketCreated)
	internalEvents.Post("/ticket-assigned", cfg.Events.TicketAssigned)
	internalEvents.Post("/ticket-resolved", cfg.Events.TicketResolved)
	internalEvents.Post("/comment-added", cfg.Events.CommentAdded)
	internalEvents.Post("/teamwork-bonus", cfg.Events.TeamworkBonus)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)
	api.Get("/users/:userID/profile", cfg.Profile.Get)
	api.Get("/users/:userID/achievements", cfg.Profile.Achievements)
	api.Get("/users/:userID/activities", cfg.Profile.Activities)
	api.Post("/users/:userID/init", cfg.Profile.Init)
	api.Get("/leaderboard", cfg.Leaderboard.Top)
}
