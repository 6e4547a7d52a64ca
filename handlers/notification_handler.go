package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func GetMyNotifications(c *fiber.Ctx) error {
	actor := currentActor(c)
	notifications, err := store.ListNotifications(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	return c.JSON(notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	if err := store.MarkNotificationRead(id, actor.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	actor := currentActor(c)
	if err := store.MarkAllNotificationsRead(actor.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
