package services

import (
	"testing"

	"github.com/campusworks/unihire/models"
)

// createOrder sets up a standalone order, not tied to any hire request or
// contract, in the given status.
func (e *testEnv) createOrder(t *testing.T, buyer, student *models.User, status string) *models.Order {
	t.Helper()
	service := e.createService(t, student, 10000)
	order := models.Order{
		BuyerID:    buyer.ID,
		StudentID:  student.ID,
		ServiceID:  service.ID,
		PriceCents: service.PriceCents,
		Status:     status,
	}
	if err := e.store.CreateOrder(&order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return &order
}

func TestOrderTransitionTable(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	admin := env.createUser(t, models.RoleAdmin)

	statuses := []string{
		models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusInProgress,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
		models.OrderStatusDisputed,
	}
	allowed := map[string][]string{
		models.OrderStatusPending:    {models.OrderStatusPaid, models.OrderStatusCancelled},
		models.OrderStatusPaid:       {models.OrderStatusInProgress, models.OrderStatusCancelled},
		models.OrderStatusInProgress: {models.OrderStatusDelivered, models.OrderStatusCancelled},
		models.OrderStatusDelivered:  {models.OrderStatusCompleted, models.OrderStatusCancelled},
		models.OrderStatusCompleted:  {},
		models.OrderStatusCancelled:  {},
		models.OrderStatusDisputed:   {models.OrderStatusCompleted, models.OrderStatusCancelled},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			order := env.createOrder(t, buyer, student, from)
			_, err := env.orders.UpdateStatus(actorFor(admin), order.ID, to)

			want := false
			for _, target := range allowed[from] {
				if target == to {
					want = true
				}
			}
			if want && err != nil {
				t.Errorf("%s -> %s: expected success, got %v", from, to, err)
			}
			if !want && !IsKind(err, KindInvalidOperation) {
				t.Errorf("%s -> %s: expected an invalid operation error, got %v", from, to, err)
			}
		}
	}

	order := env.createOrder(t, buyer, student, models.OrderStatusPending)
	_, err := env.orders.UpdateStatus(actorFor(admin), order.ID, "SHIPPED")
	expectKind(t, err, KindValidation)
}

func TestOrderRoleGating(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	stranger := env.createUser(t, models.RoleBuyer)

	order := env.createOrder(t, buyer, student, models.OrderStatusPaid)

	_, err := env.orders.UpdateStatus(actorFor(stranger), order.ID, models.OrderStatusInProgress)
	expectKind(t, err, KindForbidden)

	// The buyer cannot drive the work-side transitions.
	_, err = env.orders.UpdateStatus(actorFor(buyer), order.ID, models.OrderStatusInProgress)
	expectKind(t, err, KindForbidden)

	if _, err := env.orders.UpdateStatus(actorFor(student), order.ID, models.OrderStatusInProgress); err != nil {
		t.Fatalf("student could not start the work: %v", err)
	}
	if _, err := env.orders.UpdateStatus(actorFor(student), order.ID, models.OrderStatusDelivered); err != nil {
		t.Fatalf("student could not deliver: %v", err)
	}

	// The student cannot accept their own delivery.
	_, err = env.orders.UpdateStatus(actorFor(student), order.ID, models.OrderStatusCompleted)
	expectKind(t, err, KindForbidden)

	updated, err := env.orders.UpdateStatus(actorFor(buyer), order.ID, models.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("buyer could not complete: %v", err)
	}
	if updated.Status != models.OrderStatusCompleted {
		t.Errorf("expected status COMPLETED, got %s", updated.Status)
	}
}

func TestOrderCompletionCreditsWallet(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)

	order := env.createOrder(t, buyer, student, models.OrderStatusDelivered)

	if _, err := env.orders.UpdateStatus(actorFor(buyer), order.ID, models.OrderStatusCompleted); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	balance, err := env.store.WalletBalance(student.ID)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != order.PriceCents {
		t.Errorf("expected the full price %d credited, got %d", order.PriceCents, balance)
	}

	// COMPLETED is terminal, the credit cannot be repeated.
	_, err = env.orders.UpdateStatus(actorFor(buyer), order.ID, models.OrderStatusCompleted)
	expectKind(t, err, KindInvalidOperation)

	entries, _ := env.store.ListWalletEntries(student.ID)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one wallet entry, got %d", len(entries))
	}
}

func TestPayOrder(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)

	order := env.createOrder(t, buyer, student, models.OrderStatusPending)

	_, err := env.orders.Pay(actorFor(student), order.ID)
	expectKind(t, err, KindForbidden)

	paid, err := env.orders.Pay(actorFor(buyer), order.ID)
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if paid.Status != models.OrderStatusPaid {
		t.Errorf("expected status PAID, got %s", paid.Status)
	}

	_, err = env.orders.Pay(actorFor(buyer), order.ID)
	expectKind(t, err, KindInvalidOperation)
}

func TestContractGovernedOrderRefusesDirectPaths(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 10000)
	hire := env.hireAccepted(t, buyer, student, service)

	contract, err := env.contracts.Create(actorFor(student), CreateContractInput{
		HireRequestID: hire.ID,
		Deliverables:  []string{"logo"},
		TimelineDays:  5,
	})
	if err != nil {
		t.Fatalf("contract create failed: %v", err)
	}

	// The order exists but is governed by the contract, so direct payment
	// is refused.
	_, err = env.orders.Pay(actorFor(buyer), *contract.OrderID)
	expectKind(t, err, KindInvalidOperation)

	if _, err := env.contracts.Sign(actorFor(buyer), contract.ID, SignContractInput{Signature: "b"}); err != nil {
		t.Fatalf("buyer sign failed: %v", err)
	}
	if _, err := env.contracts.Sign(actorFor(student), contract.ID, SignContractInput{Signature: "s"}); err != nil {
		t.Fatalf("student sign failed: %v", err)
	}
	if _, err := env.contracts.ProcessPayment(actorFor(buyer), contract.ID); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	// Every direct move is refused, the cancel included: a cancelled order
	// under a live paid contract would contradict the contract state.
	_, err = env.orders.UpdateStatus(actorFor(buyer), *contract.OrderID, models.OrderStatusCancelled)
	expectKind(t, err, KindInvalidOperation)
	_, err = env.orders.UpdateStatus(actorFor(student), *contract.OrderID, models.OrderStatusInProgress)
	expectKind(t, err, KindInvalidOperation)
	_, err = env.orders.UpdateStatus(actorFor(buyer), *contract.OrderID, models.OrderStatusCompleted)
	expectKind(t, err, KindInvalidOperation)

	order, err := env.store.GetOrder(*contract.OrderID)
	if err != nil {
		t.Fatalf("order reload failed: %v", err)
	}
	if order.Status != models.OrderStatusPaid {
		t.Errorf("expected the order to stay PAID, got %s", order.Status)
	}

	// Completing through the contract still works and credits once.
	if _, err := env.contracts.MarkCompleted(actorFor(student), contract.ID, "done"); err != nil {
		t.Fatalf("contract completion failed: %v", err)
	}
	order, err = env.store.GetOrder(*contract.OrderID)
	if err != nil {
		t.Fatalf("order reload failed: %v", err)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("expected the order COMPLETED, got %s", order.Status)
	}
	entries, err := env.store.ListWalletEntries(student.ID)
	if err != nil {
		t.Fatalf("wallet reload failed: %v", err)
	}
	if len(entries) != 1 || entries[0].AmountCents != 9000 {
		t.Fatalf("expected one payout entry of 9000, got %+v", entries)
	}
}

func TestGetOrderAuthorization(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	stranger := env.createUser(t, models.RoleBuyer)
	admin := env.createUser(t, models.RoleAdmin)

	order := env.createOrder(t, buyer, student, models.OrderStatusPending)

	if _, err := env.orders.Get(actorFor(buyer), order.ID); err != nil {
		t.Fatalf("buyer should see the order: %v", err)
	}
	if _, err := env.orders.Get(actorFor(admin), order.ID); err != nil {
		t.Fatalf("admin should see the order: %v", err)
	}
	_, err := env.orders.Get(actorFor(stranger), order.ID)
	expectKind(t, err, KindForbidden)
}
