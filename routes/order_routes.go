package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	orders := api.Group("/orders", middleware.Protected())
	orders.Get("/me", handlers.GetMyOrders)
	orders.Get("/:id", handlers.GetOrder)
	orders.Post("/:id/pay", handlers.PayOrder)
	orders.Patch("/:id/status", handlers.UpdateOrderStatus)
	orders.Post("/:orderId/review", handlers.CreateReview)
}
