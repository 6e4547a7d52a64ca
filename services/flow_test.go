package services

import (
	"testing"

	"github.com/campusworks/unihire/models"
)

// TestHireToCompletionFlow walks the full happy path: a buyer hires a
// provider, the contract is drawn up and signed, payment lands in escrow,
// the work is completed, the payout is released and the buyer reviews it.
func TestHireToCompletionFlow(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 10000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{
		ServiceID: service.ID,
		Message:   "I need a logo for my startup",
	})
	if err != nil {
		t.Fatalf("hire create failed: %v", err)
	}
	hire, err = env.hires.Accept(actorFor(student), hire.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	contract, err := env.contracts.Create(actorFor(student), CreateContractInput{
		HireRequestID: hire.ID,
		Deliverables:  []string{"logo", "brand guide"},
		TimelineDays:  7,
	})
	if err != nil {
		t.Fatalf("contract create failed: %v", err)
	}
	if _, err := env.contracts.Sign(actorFor(buyer), contract.ID, SignContractInput{Signature: "Ada Buyer"}); err != nil {
		t.Fatalf("buyer sign failed: %v", err)
	}
	if _, err := env.contracts.Sign(actorFor(student), contract.ID, SignContractInput{Signature: "Sam Student"}); err != nil {
		t.Fatalf("student sign failed: %v", err)
	}

	contract, err = env.contracts.ProcessPayment(actorFor(buyer), contract.ID)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	// With the contract active the chat is open for coordination.
	room, err := env.chats.RoomForHireRequest(actorFor(buyer), hire.ID)
	if err != nil {
		t.Fatalf("room lookup failed: %v", err)
	}
	if _, err := env.chats.PostMessage(actorFor(student), room.ID, "starting today"); err != nil {
		t.Fatalf("post failed: %v", err)
	}

	contract, err = env.contracts.MarkCompleted(actorFor(student), contract.ID, "everything delivered")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	// The ledger holds exactly the 90% payout, the platform keeps the fee.
	balance, err := env.store.WalletBalance(student.ID)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 9000 {
		t.Errorf("expected balance 9000, got %d", balance)
	}
	if contract.PlatformFeeCents != 1000 {
		t.Errorf("expected fee 1000, got %d", contract.PlatformFeeCents)
	}

	order, err := env.store.GetOrder(*contract.OrderID)
	if err != nil {
		t.Fatalf("order reload failed: %v", err)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("expected the order COMPLETED, got %s", order.Status)
	}

	review, err := env.reviews.Create(actorFor(buyer), CreateReviewInput{
		OrderID: order.ID,
		Rating:  5,
		Comment: "great logo, fast turnaround",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if review.Rating != 5 {
		t.Errorf("expected rating 5, got %d", review.Rating)
	}

	// The buyer's notification trail covers the whole journey.
	notes, err := env.store.ListNotifications(buyer.ID)
	if err != nil {
		t.Fatalf("notifications failed: %v", err)
	}
	if len(notes) == 0 {
		t.Error("expected the buyer to have been notified along the way")
	}
}
