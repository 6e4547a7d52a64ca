package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/models"
)

func ListUsers(c *fiber.Ctx) error {
	users, err := store.ListUsers(c.Query("role"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}
	return c.JSON(users)
}

func VerifyStudent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := store.GetUser(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Role != models.RoleStudent {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only student accounts can be verified"})
	}
	if user.IsVerified {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This account is already verified"})
	}

	user.IsVerified = true
	if err := store.SaveUser(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify user"})
	}

	return c.JSON(fiber.Map{
		"message": "Student account verified",
		"user":    user,
	})
}

func GetPlatformStats(c *fiber.Ctx) error {
	studentCount, err := store.CountUsersByRole(models.RoleStudent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats"})
	}
	buyerCount, err := store.CountUsersByRole(models.RoleBuyer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats"})
	}
	serviceCount, err := store.CountServices()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats"})
	}
	completedOrders, err := store.CountOrdersByStatus(models.OrderStatusCompleted)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats"})
	}

	return c.JSON(fiber.Map{
		"students":         studentCount,
		"buyers":           buyerCount,
		"services":         serviceCount,
		"completed_orders": completedOrders,
	})
}

// AdminCancelHire cancels a pending hire request on a party's behalf.
func AdminCancelHire(c *fiber.Ctx) error {
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
