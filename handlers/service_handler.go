package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/models"
)

type CreateServiceRequest struct {
	Title        string `json:"title" validate:"required,min=5"`
	Description  string `json:"description" validate:"required,min=20"`
	Category     string `json:"category,omitempty"`
	PriceCents   int64  `json:"price_cents" validate:"required,gt=0"`
	DeliveryDays int    `json:"delivery_days,omitempty" validate:"omitempty,gt=0"`
}

func CreateService(c *fiber.Ctx) error {
	actor := currentActor(c)

	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	owner, err := store.GetUser(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if !owner.IsVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Your student account must be verified before listing services"})
	}

	service := models.Service{
		OwnerID:     actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		IsActive:    true,
	}
	if req.DeliveryDays > 0 {
		service.DeliveryDays = req.DeliveryDays
	}

	if err := store.CreateService(&service); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service listed",
		"service": service,
	})
}

type UpdateServiceRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=5"`
	Description  *string `json:"description,omitempty" validate:"omitempty,min=20"`
	Category     *string `json:"category,omitempty"`
	PriceCents   *int64  `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	DeliveryDays *int    `json:"delivery_days,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func UpdateService(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	var req UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service, err := store.GetService(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	if service.OwnerID != actor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this service"})
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.PriceCents != nil {
		service.PriceCents = *req.PriceCents
	}
	if req.DeliveryDays != nil {
		service.DeliveryDays = *req.DeliveryDays
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := store.SaveService(service); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}

	return c.JSON(fiber.Map{
		"message": "Service updated",
		"service": service,
	})
}

func ListServices(c *fiber.Ctx) error {
	services, err := store.ListActiveServices(c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load services"})
	}
	return c.JSON(services)
}

func GetService(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	service, err := store.GetService(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	return c.JSON(service)
}

func GetMyServices(c *fiber.Ctx) error {
	actor := currentActor(c)
	services, err := store.ListServicesByOwner(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load services"})
	}
	return c.JSON(services)
}
