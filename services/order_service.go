package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/payments"
	"github.com/campusworks/unihire/repository"
)

// orderTransitions is the complete set of legal order status moves. Anything
// not listed here is rejected, naming the attempted pair.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:       {models.OrderStatusInProgress, models.OrderStatusCancelled},
	models.OrderStatusInProgress: {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCancelled:  {},
	models.OrderStatusDisputed:   {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, target := range orderTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// studentTargets / buyerTargets gate who may drive which transition. Admins
// may drive any transition the table allows.
var studentTargets = []string{models.OrderStatusInProgress, models.OrderStatusDelivered}
var buyerTargets = []string{models.OrderStatusCompleted, models.OrderStatusCancelled}

func roleAllows(targets []string, to string) bool {
	for _, target := range targets {
		if target == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	store    *repository.Store
	notifier *notifications.Notifier
	gateway  payments.Gateway
}

func NewOrderService(store *repository.Store, notifier *notifications.Notifier, gateway payments.Gateway) *OrderService {
	return &OrderService{store: store, notifier: notifier, gateway: gateway}
}

// UpdateStatus drives an order through the transition table. Orders governed
// by a contract are refused outright: their status follows the contract
// lifecycle, and a direct move (a cancel, say) would leave the two records
// contradicting each other. Completion via this path credits the provider's
// wallet.
func (s *OrderService) UpdateStatus(actor models.Actor, orderID uuid.UUID, newStatus string) (*models.Order, error) {
	if _, known := orderTransitions[newStatus]; !known {
		return nil, ErrValidation("unknown order status", map[string]string{"status": "unrecognized value"})
	}

	var order *models.Order
	var creditedCents int64

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("order not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != order.BuyerID && actor.ID != order.StudentID && !actor.IsAdmin() {
			return ErrForbidden("you are not a party to this order")
		}
		if _, err := tx.GetContractByOrder(order); err == nil {
			return ErrInvalidOperation("this order is governed by a contract, use the contract endpoints").WithEntity(order)
		} else if !repository.IsNotFound(err) {
			return ErrInternal(err)
		}
		if !transitionAllowed(order.Status, newStatus) {
			return ErrInvalidOperation(
				fmt.Sprintf("cannot transition order from %s to %s", order.Status, newStatus)).WithEntity(order)
		}

		switch {
		case actor.IsAdmin():
		case actor.ID == order.StudentID && roleAllows(studentTargets, newStatus):
		case actor.ID == order.BuyerID && roleAllows(buyerTargets, newStatus):
		default:
			return ErrForbidden(
				fmt.Sprintf("your role cannot move an order to %s", newStatus))
		}

		if newStatus == models.OrderStatusCompleted {
			reference := walletReferenceForOrder(order.ID)
			credited, err := tx.HasWalletEntry(reference)
			if err != nil {
				return ErrInternal(err)
			}
			if credited {
				return ErrConflict("the payout for this order has already been credited").WithEntity(order)
			}
			entry := models.WalletEntry{
				UserID:      order.StudentID,
				AmountCents: order.PriceCents,
				Reason:      fmt.Sprintf("Payout for order %s", order.ID),
				Reference:   reference,
			}
			if err := tx.CreateWalletEntry(&entry); err != nil {
				if repository.IsDuplicate(err) {
					return ErrConflict("the payout for this order has already been credited").WithEntity(order)
				}
				return ErrInternal(err)
			}
			creditedCents = order.PriceCents
		}

		order.Status = newStatus
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifyStatusChange(actor, order, creditedCents)
	return order, nil
}

// Pay marks a pending order paid. Orders attached to a contract are paid
// through the contract; this path exists for plain purchases only.
func (s *OrderService) Pay(actor models.Actor, orderID uuid.UUID) (*models.Order, error) {
	var order *models.Order

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("order not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != order.BuyerID {
			return ErrForbidden("only the buyer can pay for this order")
		}
		if order.Status != models.OrderStatusPending {
			return ErrInvalidOperation(
				fmt.Sprintf("only a pending order can be paid, this one is %s", order.Status)).WithEntity(order)
		}
		if _, err := tx.GetContractByOrder(order); err == nil {
			return ErrInvalidOperation("this order is paid through its contract").WithEntity(order)
		} else if !repository.IsNotFound(err) {
			return ErrInternal(err)
		}

		if _, err := s.gateway.Capture(order.ID.String(), order.PriceCents); err != nil {
			return ErrInternal(err)
		}
		order.Status = models.OrderStatusPaid
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(order.StudentID, models.NotifyOrderUpdated,
		"Order paid", "The buyer has paid for the order. You can start the work.")

	return order, nil
}

func (s *OrderService) Get(actor models.Actor, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("order not found")
		}
		return nil, ErrInternal(err)
	}
	if actor.ID != order.BuyerID && actor.ID != order.StudentID && !actor.IsAdmin() {
		return nil, ErrForbidden("you are not a party to this order")
	}
	return order, nil
}

func (s *OrderService) ListForUser(userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.store.ListOrdersForUser(userID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	return orders, nil
}

func (s *OrderService) notifyStatusChange(actor models.Actor, order *models.Order, creditedCents int64) {
	counterpart := order.BuyerID
	if actor.ID == order.BuyerID {
		counterpart = order.StudentID
	}
	s.notifier.Notify(counterpart, models.NotifyOrderUpdated,
		"Order updated",
		fmt.Sprintf("The order is now %s.", order.Status))
	if creditedCents > 0 {
		s.notifier.Notify(order.StudentID, models.NotifyPayoutCredited,
			"Payout credited",
			fmt.Sprintf("%d cents have been credited to your wallet.", creditedCents))
	}
}

func walletReferenceForOrder(orderID uuid.UUID) string {
	return "order:" + orderID.String()
}
