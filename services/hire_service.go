package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/repository"
)

type HireService struct {
	store    *repository.Store
	notifier *notifications.Notifier
}

func NewHireService(store *repository.Store, notifier *notifications.Notifier) *HireService {
	return &HireService{store: store, notifier: notifier}
}

type CreateHireInput struct {
	ServiceID  uuid.UUID
	Message    string
	PriceCents *int64
}

// Create opens a negotiation: a buyer asks a provider to take on a service.
// At most one non-terminal request may exist per (buyer, service) and per
// (buyer, student); both checks are re-run inside the transaction.
func (s *HireService) Create(actor models.Actor, input CreateHireInput) (*models.HireRequest, error) {
	if !actor.IsBuyer() {
		return nil, ErrForbidden("only buyers can create hire requests")
	}
	if input.PriceCents != nil && *input.PriceCents < 0 {
		return nil, ErrValidation("price must not be negative", map[string]string{"price_cents": "must be >= 0"})
	}

	service, err := s.store.GetService(input.ServiceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("service not found")
		}
		return nil, ErrInternal(err)
	}
	if !service.IsActive {
		return nil, ErrNotFound("service is no longer available")
	}
	if service.OwnerID == actor.ID {
		return nil, ErrInvalidOperation("you cannot hire yourself")
	}

	hire := models.HireRequest{
		BuyerID:    actor.ID,
		StudentID:  service.OwnerID,
		ServiceID:  service.ID,
		Message:    input.Message,
		PriceCents: input.PriceCents,
		Status:     models.HireStatusPending,
	}

	err = s.store.Transaction(func(tx *repository.Store) error {
		open, err := tx.HasOpenHireForService(actor.ID, service.ID)
		if err != nil {
			return ErrInternal(err)
		}
		if open {
			return ErrConflict("you already have an open request for this service")
		}
		open, err = tx.HasOpenHireWithStudent(actor.ID, service.OwnerID)
		if err != nil {
			return ErrInternal(err)
		}
		if open {
			return ErrConflict("you already have an open request with this provider")
		}
		if err := tx.CreateHireRequest(&hire); err != nil {
			if repository.IsDuplicate(err) {
				return ErrConflict("you already have an open request with this provider")
			}
			return ErrInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(service.OwnerID, models.NotifyHireRequested,
		"New hire request",
		fmt.Sprintf("You have a new hire request for '%s'.", service.Title))

	return &hire, nil
}

// Accept moves a pending request to ACCEPTED and, in the same transaction,
// opens the chat room and creates the pending order.
func (s *HireService) Accept(actor models.Actor, id uuid.UUID) (*models.HireRequest, error) {
	var hire *models.HireRequest
	var service *models.Service

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		hire, err = tx.GetHireRequestForUpdate(id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("hire request not found")
			}
			return ErrInternal(err)
		}
		if hire.StudentID != actor.ID {
			return ErrForbidden("only the provider can accept this request")
		}
		if hire.Status != models.HireStatusPending {
			return ErrInvalidOperation(
				fmt.Sprintf("cannot accept a request in status %s", hire.Status)).WithEntity(hire)
		}

		service, err = tx.GetService(hire.ServiceID)
		if err != nil {
			return ErrInternal(err)
		}

		// Re-check the one-order-per-(buyer,service) rule under the lock.
		if _, err := tx.FindOrderByBuyerService(hire.BuyerID, hire.ServiceID); err == nil {
			return ErrConflict("this buyer has already purchased this service")
		} else if !repository.IsNotFound(err) {
			return ErrInternal(err)
		}

		hire.Status = models.HireStatusAccepted
		if err := tx.SaveHireRequest(hire); err != nil {
			return ErrInternal(err)
		}

		room := models.ChatRoom{
			HireRequestID: hire.ID,
			BuyerID:       hire.BuyerID,
			StudentID:     hire.StudentID,
		}
		if err := tx.CreateChatRoom(&room); err != nil {
			return ErrInternal(err)
		}

		order := models.Order{
			BuyerID:       hire.BuyerID,
			StudentID:     hire.StudentID,
			ServiceID:     hire.ServiceID,
			HireRequestID: &hire.ID,
			PriceCents:    hire.AgreedPriceCents(service),
			Status:        models.OrderStatusPending,
		}
		if err := tx.CreateOrder(&order); err != nil {
			if repository.IsDuplicate(err) {
				return ErrConflict("this buyer has already purchased this service")
			}
			return ErrInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.NotifyMany([]uuid.UUID{hire.BuyerID, hire.StudentID}, models.NotifyHireAccepted,
		"Hire request accepted",
		fmt.Sprintf("The request for '%s' was accepted. A chat room is now open.", service.Title))

	return hire, nil
}

func (s *HireService) Reject(actor models.Actor, id uuid.UUID) (*models.HireRequest, error) {
	var hire *models.HireRequest

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		hire, err = tx.GetHireRequestForUpdate(id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("hire request not found")
			}
			return ErrInternal(err)
		}
		if hire.StudentID != actor.ID {
			return ErrForbidden("only the provider can reject this request")
		}
		if hire.Status != models.HireStatusPending {
			return ErrInvalidOperation(
				fmt.Sprintf("cannot reject a request in status %s", hire.Status)).WithEntity(hire)
		}
		hire.Status = models.HireStatusRejected
		return tx.SaveHireRequest(hire)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(hire.BuyerID, models.NotifyHireRejected,
		"Hire request rejected", "The provider declined your hire request.")

	return hire, nil
}

// Cancel is available to either party of a pending request, or to an admin.
func (s *HireService) Cancel(actor models.Actor, id uuid.UUID) (*models.HireRequest, error) {
	var hire *models.HireRequest

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		hire, err = tx.GetHireRequestForUpdate(id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("hire request not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != hire.BuyerID && actor.ID != hire.StudentID && !actor.IsAdmin() {
			return ErrForbidden("you are not a party to this request")
		}
		if hire.Status != models.HireStatusPending {
			return ErrInvalidOperation(
				fmt.Sprintf("cannot cancel a request in status %s", hire.Status)).WithEntity(hire)
		}
		hire.Status = models.HireStatusCancelled
		return tx.SaveHireRequest(hire)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	// Tell the party that did not ask for the cancellation.
	counterpart := hire.BuyerID
	if actor.ID == hire.BuyerID {
		counterpart = hire.StudentID
	}
	s.notifier.Notify(counterpart, models.NotifyHireCancelled,
		"Hire request cancelled", "The hire request was cancelled.")

	return hire, nil
}

func (s *HireService) ListForUser(userID uuid.UUID) ([]models.HireRequest, error) {
	requests, err := s.store.ListHireRequestsForUser(userID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	return requests, nil
}
