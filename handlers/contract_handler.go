package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campusworks/unihire/services"
)

type CreateContractRequest struct {
	HireRequestID   string   `json:"hire_request_id" validate:"required,uuid"`
	Deliverables    []string `json:"deliverables" validate:"required,min=1,dive,required"`
	TimelineDays    int      `json:"timeline_days" validate:"required,gt=0"`
	AdditionalTerms string   `json:"additional_terms,omitempty"`
}

func CreateContract(c *fiber.Ctx) error {
	actor := currentActor(c)

	var req CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	hireRequestID, _ := uuid.Parse(req.HireRequestID)

	contract, err := contracts.Create(actor, services.CreateContractInput{
		HireRequestID:   hireRequestID,
		Deliverables:    req.Deliverables,
		TimelineDays:    req.TimelineDays,
		AdditionalTerms: req.AdditionalTerms,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Contract created and sent to the buyer for signing",
		"contract": contract,
	})
}

type SignContractRequest struct {
	Signature string `json:"signature" validate:"required"`
}

func SignContract(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract id"})
	}

	var req SignContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	contract, err := contracts.Sign(actor, id, services.SignContractInput{
		Signature: req.Signature,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		return respondError(c, err)
	}

	message := "Contract signed, waiting for the other party"
	if contract.IsFullySigned() {
		message = "Contract signed by both parties and now active"
	}
	return c.JSON(fiber.Map{
		"message":  message,
		"contract": contract,
	})
}

func ProcessContractPayment(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract id"})
	}

	contract, err := contracts.ProcessPayment(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Payment captured, the provider can start the work",
		"contract": contract,
	})
}

type UpdateProgressRequest struct {
	Status          string `json:"status,omitempty"`
	Notes           string `json:"notes,omitempty"`
	MarkAsCompleted bool   `json:"mark_as_completed,omitempty"`
}

func UpdateContractProgress(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract id"})
	}

	var req UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	contract, err := contracts.UpdateProgress(actor, id, services.UpdateProgressInput{
		Status:          req.Status,
		Notes:           req.Notes,
		MarkAsCompleted: req.MarkAsCompleted,
	})
	if err != nil {
		return respondError(c, err)
	}

	message := "Progress updated"
	if req.MarkAsCompleted {
		message = "Contract completed and payout credited"
	}
	return c.JSON(fiber.Map{
		"message":  message,
		"contract": contract,
	})
}

type CompleteContractRequest struct {
	CompletionNotes string `json:"completion_notes,omitempty"`
}

func MarkContractCompleted(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract id"})
	}

	var req CompleteContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	contract, err := contracts.MarkCompleted(actor, id, req.CompletionNotes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Contract completed and payout credited",
		"contract": contract,
	})
}

func GetContract(c *fiber.Ctx) error {
	actor := currentActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract id"})
	}

	contract, err := contracts.Get(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contract)
}

func GetMyContracts(c *fiber.Ctx) error {
	actor := currentActor(c)
	list, err := contracts.ListForUser(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
