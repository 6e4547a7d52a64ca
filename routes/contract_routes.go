package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/middleware"
)

func ContractRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	contracts := api.Group("/contracts", middleware.Protected())
	contracts.Get("/me", handlers.GetMyContracts)
	contracts.Get("/:id", handlers.GetContract)
	contracts.Post("", middleware.StudentRequired(), handlers.CreateContract)
	contracts.Post("/:id/sign", handlers.SignContract)
	contracts.Post("/:id/pay", handlers.ProcessContractPayment)
	contracts.Post("/:id/progress", middleware.StudentRequired(), handlers.UpdateContractProgress)
	contracts.Post("/:id/complete", middleware.StudentRequired(), handlers.MarkContractCompleted)
}
