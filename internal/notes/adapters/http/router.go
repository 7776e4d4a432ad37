// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"gonotepad/internal/notes/adapters/http/middleware"
	"gonotepad/internal/notes/adapters/http/notes"
	"gonotepad/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Если tokens равен nil, API доступен без авторизации.
func SetupRouter(app *fiber.App, controller notes.Controller, feed notes.NotificationFeed, tokens services.TokenService) {
	notesHandler := notes.NewHandler(controller, feed)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")
	if tokens != nil {
		apiV1.Use(middleware.NewAuthMiddleware(tokens))
	}

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/export", notesHandler.ExportNotes)
	notesRoutes.Post("/import", notesHandler.ImportNotes)
	notesRoutes.Get("/:id", notesHandler.ShowNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	editorRoutes := apiV1.Group("/editor")
	editorRoutes.Get("/", notesHandler.GetEditor)
	editorRoutes.Post("/", notesHandler.OpenCreateEditor)
	editorRoutes.Post("/:id", notesHandler.OpenEditEditor)
	editorRoutes.Put("/", notesHandler.SaveEditor)
	editorRoutes.Delete("/", notesHandler.CancelEditor)

	apiV1.Get("/notifications", notesHandler.ListNotifications)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
