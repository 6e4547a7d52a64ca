package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func HireRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	hires := api.Group("/hires", middleware.Protected())
	hires.Get("/me", handlers.GetMyHireRequests)
	hires.Post("", handlers.CreateHireRequest)
	hires.Post("/:id/accept", handlers.AcceptHireRequest)
	hires.Post("/:id/reject", handlers.RejectHireRequest)
	hires.Post("/:id/cancel", handlers.CancelHireRequest)

	hires.Get("/:hireId/chat", handlers.GetChatRoomForHire)
}
