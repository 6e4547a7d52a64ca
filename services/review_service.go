package services

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/repository"
)

type ReviewService struct {
	store    *repository.Store
	notifier *notifications.Notifier
}

func NewReviewService(store *repository.Store, notifier *notifications.Notifier) *ReviewService {
	return &ReviewService{store: store, notifier: notifier}
}

type CreateReviewInput struct {
	OrderID uuid.UUID
	Rating  int
	Comment string
}

// Create lets the buyer rate a completed order, exactly once.
func (s *ReviewService) Create(actor models.Actor, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrValidation("rating must be between 1 and 5", map[string]string{"rating": "must be 1-5"})
	}

	var review *models.Review
	var studentID uuid.UUID

	err := s.store.Transaction(func(tx *repository.Store) error {
		order, err := tx.GetOrderForUpdate(input.OrderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("order not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != order.BuyerID {
			return ErrForbidden("only the buyer can review this order")
		}
		if order.Status != models.OrderStatusCompleted {
			return ErrInvalidOperation("reviews can only be submitted for completed orders").WithEntity(order)
		}

		exists, err := tx.HasReviewForOrder(order.ID)
		if err != nil {
			return ErrInternal(err)
		}
		if exists {
			return ErrConflict("a review for this order has already been submitted")
		}

		studentID = order.StudentID
		review = &models.Review{
			OrderID:   order.ID,
			BuyerID:   actor.ID,
			StudentID: order.StudentID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := tx.CreateReview(review); err != nil {
			if repository.IsDuplicate(err) {
				return ErrConflict("a review for this order has already been submitted")
			}
			return ErrInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(studentID, models.NotifyReviewReceived,
		"New review", "A buyer has left a review on one of your orders.")

	return review, nil
}

func (s *ReviewService) ListForStudent(studentID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.store.ListReviewsForStudent(studentID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	return reviews, nil
}
