package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/users", handlers.ListUsers)
	admin.Post("/users/:id/verify", handlers.VerifyStudent)
	admin.Get("/stats", handlers.GetPlatformStats)
	admin.Post("/hires/:id/cancel", handlers.AdminCancelHire)
}
