package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/repository"
	"github.com/campusworks/unihire/services"
	"github.com/campusworks/unihire/websocket"
)

var validate = validator.New()

var (
	store     *repository.Store
	hires     *services.HireService
	contracts *services.ContractService
	orders    *services.OrderService
	reviews   *services.ReviewService
	chats     *services.ChatService
	notifier  *notifications.Notifier
	hub       *websocket.Hub
)

type Deps struct {
	Store     *repository.Store
	Hires     *services.HireService
	Contracts *services.ContractService
	Orders    *services.OrderService
	Reviews   *services.ReviewService
	Chats     *services.ChatService
	Notifier  *notifications.Notifier
	Hub       *websocket.Hub
}

func Init(deps Deps) {
	store = deps.Store
	hires = deps.Hires
	contracts = deps.Contracts
	orders = deps.Orders
	reviews = deps.Reviews
	chats = deps.Chats
	notifier = deps.Notifier
	hub = deps.Hub
}

func currentActor(c *fiber.Ctx) models.Actor {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	role, _ := claims["role"].(string)
	return models.Actor{ID: id, Role: role}
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// respondError maps the service error taxonomy onto HTTP statuses. Rejected
// transitions carry the current entity so the client can retry from known
// state.
func respondError(c *fiber.Ctx, err error) error {
	e, ok := err.(*services.Error)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}

	status := fiber.StatusInternalServerError
	switch e.Kind {
	case services.KindValidation, services.KindInvalidOperation:
		status = fiber.StatusBadRequest
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindForbidden:
		status = fiber.StatusForbidden
	case services.KindConflict:
		status = fiber.StatusConflict
	}

	body := fiber.Map{"error": e.Message}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	if e.Entity != nil {
		body["current"] = e.Entity
	}
	return c.Status(status).JSON(body)
}
