package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func AccountRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	wallet := api.Group("/wallet", middleware.Protected(), middleware.StudentRequired())
	wallet.Get("", handlers.GetMyWallet)

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", handlers.GetMyNotifications)
	notifications.Post("/read-all", handlers.MarkAllNotificationsRead)
	notifications.Post("/:id/read", handlers.MarkNotificationRead)

	app.Use("/ws", middleware.Protected(), handlers.WebsocketUpgrade)
	app.Get("/ws/notifications", middleware.Protected(), handlers.NotificationSocket())
}
