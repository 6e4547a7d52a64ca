package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func GetMyWallet(c *fiber.Ctx) error {
	actor := currentActor(c)

	balance, err := store.WalletBalance(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load wallet"})
	}
	entries, err := store.ListWalletEntries(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load wallet"})
	}

	return c.JSON(fiber.Map{
		"balance_cents": balance,
		"entries":       entries,
	})
}
