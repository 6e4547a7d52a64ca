package services

import (
	"testing"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/repository"
)

func TestCreateHireRequest(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 10000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{
		ServiceID: service.ID,
		Message:   "Can you start next week?",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if hire.Status != models.HireStatusPending {
		t.Errorf("expected status PENDING, got %s", hire.Status)
	}
	if hire.StudentID != student.ID {
		t.Errorf("expected student %s on the request, got %s", student.ID, hire.StudentID)
	}
	if hire.PriceCents != nil {
		t.Errorf("expected no price override, got %d", *hire.PriceCents)
	}
}

func TestCreateHireRequestRoleAndTarget(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 5000)

	_, err := env.hires.Create(actorFor(student), CreateHireInput{ServiceID: service.ID})
	expectKind(t, err, KindForbidden)

	// Hiring your own service is rejected before anything is written.
	buyerOwned := env.createService(t, buyer, 2000)
	_, err = env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: buyerOwned.ID})
	expectKind(t, err, KindInvalidOperation)

	requests, err := env.hires.ListForUser(buyer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("expected no requests recorded, got %d", len(requests))
	}
}

func TestCreateHireRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 5000)

	negative := int64(-1)
	_, err := env.hires.Create(actorFor(buyer), CreateHireInput{
		ServiceID:  service.ID,
		PriceCents: &negative,
	})
	expectKind(t, err, KindValidation)

	service.IsActive = false
	if err := env.store.SaveService(service); err != nil {
		t.Fatalf("failed to deactivate service: %v", err)
	}
	_, err = env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	expectKind(t, err, KindNotFound)
}

func TestCreateHireRequestDuplicates(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 5000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	expectKind(t, err, KindConflict)

	// A different service from the same provider is still blocked while the
	// first request is open.
	other := env.createService(t, student, 8000)
	_, err = env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: other.ID})
	expectKind(t, err, KindConflict)

	// Once the request reaches a terminal state the buyer can ask again.
	if _, err := env.hires.Reject(actorFor(student), hire.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID}); err != nil {
		t.Fatalf("expected a new request after rejection, got: %v", err)
	}
}

// TestOpenHireUniquenessIsStorageBacked inserts straight through the store,
// the way two racing transactions would after both passing the COUNT checks.
// The partial unique indexes must reject the second row.
func TestOpenHireUniquenessIsStorageBacked(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 5000)
	other := env.createService(t, student, 8000)

	first := models.HireRequest{
		BuyerID:   buyer.ID,
		StudentID: student.ID,
		ServiceID: service.ID,
		Status:    models.HireStatusPending,
	}
	if err := env.store.CreateHireRequest(&first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	sameService := models.HireRequest{
		BuyerID:   buyer.ID,
		StudentID: student.ID,
		ServiceID: service.ID,
		Status:    models.HireStatusPending,
	}
	if err := env.store.CreateHireRequest(&sameService); !repository.IsDuplicate(err) {
		t.Fatalf("expected a duplicate error for the same service, got %v", err)
	}

	sameStudent := models.HireRequest{
		BuyerID:   buyer.ID,
		StudentID: student.ID,
		ServiceID: other.ID,
		Status:    models.HireStatusPending,
	}
	if err := env.store.CreateHireRequest(&sameStudent); !repository.IsDuplicate(err) {
		t.Fatalf("expected a duplicate error for the same provider, got %v", err)
	}

	// Terminal rows fall out of the index, so a fresh request goes through.
	first.Status = models.HireStatusRejected
	if err := env.store.SaveHireRequest(&first); err != nil {
		t.Fatalf("failed to reject first request: %v", err)
	}
	again := models.HireRequest{
		BuyerID:   buyer.ID,
		StudentID: student.ID,
		ServiceID: service.ID,
		Status:    models.HireStatusPending,
	}
	if err := env.store.CreateHireRequest(&again); err != nil {
		t.Fatalf("expected the insert to pass after rejection, got %v", err)
	}
}

func TestAcceptHireRequest(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 10000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = env.hires.Accept(actorFor(buyer), hire.ID)
	expectKind(t, err, KindForbidden)

	hire, err = env.hires.Accept(actorFor(student), hire.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if hire.Status != models.HireStatusAccepted {
		t.Errorf("expected status ACCEPTED, got %s", hire.Status)
	}

	order, err := env.store.FindOrderForHire(hire)
	if err != nil {
		t.Fatalf("expected an order for the accepted request: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected a PENDING order, got %s", order.Status)
	}
	if order.PriceCents != 10000 {
		t.Errorf("expected the service price on the order, got %d", order.PriceCents)
	}

	if _, err := env.store.GetChatRoomByHireRequest(hire.ID); err != nil {
		t.Fatalf("expected a chat room for the accepted request: %v", err)
	}

	_, err = env.hires.Accept(actorFor(student), hire.ID)
	expectKind(t, err, KindInvalidOperation)
}

func TestAcceptHonorsPriceOverride(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 10000)

	agreed := int64(7500)
	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{
		ServiceID:  service.ID,
		PriceCents: &agreed,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	hire, err = env.hires.Accept(actorFor(student), hire.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	order, err := env.store.FindOrderForHire(hire)
	if err != nil {
		t.Fatalf("expected an order: %v", err)
	}
	if order.PriceCents != 7500 {
		t.Errorf("expected the agreed price 7500 on the order, got %d", order.PriceCents)
	}
}

func TestRejectHireRequest(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	service := env.createService(t, student, 5000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = env.hires.Reject(actorFor(buyer), hire.ID)
	expectKind(t, err, KindForbidden)

	hire, err = env.hires.Reject(actorFor(student), hire.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if hire.Status != models.HireStatusRejected {
		t.Errorf("expected status REJECTED, got %s", hire.Status)
	}

	// Terminal states stay terminal.
	_, err = env.hires.Cancel(actorFor(buyer), hire.ID)
	expectKind(t, err, KindInvalidOperation)
	_, err = env.hires.Accept(actorFor(student), hire.ID)
	expectKind(t, err, KindInvalidOperation)
}

func TestCancelHireRequest(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	stranger := env.createUser(t, models.RoleBuyer)
	admin := env.createUser(t, models.RoleAdmin)
	service := env.createService(t, student, 5000)

	hire, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = env.hires.Cancel(actorFor(stranger), hire.ID)
	expectKind(t, err, KindForbidden)

	hire, err = env.hires.Cancel(actorFor(buyer), hire.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if hire.Status != models.HireStatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", hire.Status)
	}

	// Admins can cancel a pending request they are not a party to.
	second, err := env.hires.Create(actorFor(buyer), CreateHireInput{ServiceID: service.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.hires.Cancel(actorFor(admin), second.ID); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}
