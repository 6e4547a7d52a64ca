package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusworks/unihire/services"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

func CreateReview(c *fiber.Ctx) error {
	actor := currentActor(c)
	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := reviews.Create(actor, services.CreateReviewInput{
		OrderID: orderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review submitted",
		"review":  review,
	})
}

func GetStudentReviews(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	list, err := reviews.ListForStudent(studentID)
	if err != nil {
		return respondError(c, err)
	}

	avg, err := store.AverageRatingForStudent(studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rating"})
	}

	return c.JSON(fiber.Map{
		"reviews":    list,
		"avg_rating": avg,
	})
}
