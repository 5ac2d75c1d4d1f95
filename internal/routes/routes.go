package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetakip/projetakip-backend/internal/handlers"
	"github.com/projetakip/projetakip-backend/internal/middleware"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// Deps holds everything the route tree needs
type Deps struct {
	Store     storage.Store
	Assistant *services.Assistant
	Meetings  *services.MeetingService
	Notifier  services.Notifier
	JWTSecret string
	Version   string
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, deps Deps) {
	healthHandler := handlers.NewHealthHandler(deps.Version)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant)
	meetingHandler := handlers.NewMeetingHandler(deps.Meetings)
	categoryHandler := handlers.NewCategoryHandler(deps.Store)
	projectHandler := handlers.NewProjectHandler(deps.Store, deps.Notifier)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to ProjeTakip Backend!",
			"version": deps.Version,
			"endpoints": fiber.Map{
				"health":     "/health",
				"assistant":  "/api/assistant/chat",
				"meetings":   "/api/meetings",
				"categories": "/api/categories",
				"projects":   "/api/projects",
			},
		})
	})

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api", middleware.RequireActor(deps.JWTSecret))

	assistant := api.Group("/assistant")
	assistant.Post("/chat", assistantHandler.Chat)
	assistant.Post("/reset", assistantHandler.Reset)

	meetings := api.Group("/meetings")
	meetings.Post("/", meetingHandler.CreateMeeting)
	meetings.Get("/", meetingHandler.ListMeetings)
	meetings.Get("/:id", meetingHandler.GetMeeting)
	meetings.Post("/:id/decision", meetingHandler.DecideMeeting)
	meetings.Put("/:id", meetingHandler.UpdateMeeting)
	meetings.Delete("/:id", meetingHandler.DeleteMeeting)

	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.ListCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Put("/:id", categoryHandler.UpdateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	projects := api.Group("/projects")
	projects.Get("/", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Put("/:id/status", projectHandler.UpdateProjectStatus)
	projects.Post("/:id/comments", projectHandler.AddComment)
	projects.Post("/:id/evaluations", projectHandler.AddEvaluation)
}
