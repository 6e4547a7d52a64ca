package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func GetChatRoomForHire(c *fiber.Ctx) error {
	actor := currentActor(c)
	hireID, err := parseIDParam(c, "hireId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid hire request id"})
	}

	room, err := chats.RoomForHireRequest(actor, hireID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func PostChatMessage(c *fiber.Ctx) error {
	actor := currentActor(c)
	roomID, err := parseIDParam(c, "roomId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	var req PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	msg, err := chats.PostMessage(actor, roomID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func GetChatMessages(c *fiber.Ctx) error {
	actor := currentActor(c)
	roomID, err := parseIDParam(c, "roomId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	messages, err := chats.ListMessages(actor, roomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}
