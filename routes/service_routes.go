package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func ServiceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	services := api.Group("/services")
	services.Get("", handlers.ListServices)
	services.Get("/:id", handlers.GetService)

	mine := api.Group("/my/services", middleware.Protected(), middleware.StudentRequired())
	mine.Get("", handlers.GetMyServices)
	mine.Post("", handlers.CreateService)
	mine.Patch("/:id", handlers.UpdateService)

	api.Get("/students/:studentId/reviews", handlers.GetStudentReviews)
}
