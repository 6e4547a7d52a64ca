package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected())
	chat.Get("/:roomId/messages", handlers.GetChatMessages)
	chat.Post("/:roomId/messages", handlers.PostChatMessage)
}
