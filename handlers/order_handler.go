package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	order, err := orders.UpdateStatus(actor, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}

func PayOrder(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := orders.Pay(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order paid",
		"order":   order,
	})
}

func GetOrder(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := orders.Get(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func GetMyOrders(c *fiber.Ctx) error {
	actor := currentActor(c)
	list, err := orders.ListForUser(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
