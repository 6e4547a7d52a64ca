package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusworks/unihire/services"
)

type CreateHireRequestRequest struct {
	ServiceID  string `json:"service_id" validate:"required,uuid"`
	Message    string `json:"message" validate:"required,min=10"`
	PriceCents *int64 `json:"price_cents,omitempty"`
}

func CreateHireRequest(c *fiber.Ctx) error {
	actor := currentActor(c)

	var req CreateHireRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	serviceID, _ := uuid.Parse(req.ServiceID)

	hire, err := hires.Create(actor, services.CreateHireInput{
		ServiceID:  serviceID,
		Message:    req.Message,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Hire request sent to the provider",
		"hire_request": hire,
	})
}

func AcceptHireRequest(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid hire request id"})
	}

	hire, err := hires.Accept(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Hire request accepted, chat room opened and order created",
		"hire_request": hire,
	})
}

func RejectHireRequest(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid hire request id"})
	}

	hire, err := hires.Reject(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Hire request rejected",
		"hire_request": hire,
	})
}

func CancelHireRequest(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid hire request id"})
	}

	hire, err := hires.Cancel(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Hire request cancelled",
		"hire_request": hire,
	})
}

func GetMyHireRequests(c *fiber.Ctx) error {
	actor := currentActor(c)
	requests, err := hires.ListForUser(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}
