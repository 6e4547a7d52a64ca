package services

import (
	"testing"

	"github.com/campusworks/unihire/models"
)

func TestChatOpensOnlyAfterBothSignatures(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, models.RoleBuyer)
	student := env.createUser(t, models.RoleStudent)
	stranger := env.createUser(t, models.RoleBuyer)
	service := env.createService(t, student, 10000)
	hire := env.hireAccepted(t, buyer, student, service)

	room, err := env.chats.RoomForHireRequest(actorFor(buyer), hire.ID)
	if err != nil {
		t.Fatalf("expected the room to exist after acceptance: %v", err)
	}
	_, err = env.chats.RoomForHireRequest(actorFor(stranger), hire.ID)
	expectKind(t, err, KindForbidden)

	// No contract yet: the room exists but stays closed.
	_, err = env.chats.PostMessage(actorFor(buyer), room.ID, "when can you start?")
	expectKind(t, err, KindInvalidOperation)

	contract, err := env.contracts.Create(actorFor(student), CreateContractInput{
		HireRequestID: hire.ID,
		Deliverables:  []string{"logo"},
		TimelineDays:  5,
	})
	if err != nil {
		t.Fatalf("contract create failed: %v", err)
	}

	// One signature is not enough.
	if _, err := env.contracts.Sign(actorFor(buyer), contract.ID, SignContractInput{Signature: "b"}); err != nil {
		t.Fatalf("buyer sign failed: %v", err)
	}
	_, err = env.chats.PostMessage(actorFor(buyer), room.ID, "hello?")
	expectKind(t, err, KindInvalidOperation)

	if _, err := env.contracts.Sign(actorFor(student), contract.ID, SignContractInput{Signature: "s"}); err != nil {
		t.Fatalf("student sign failed: %v", err)
	}

	msg, err := env.chats.PostMessage(actorFor(buyer), room.ID, "great, let's get started")
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if msg.SenderID != buyer.ID {
		t.Errorf("expected the buyer as sender, got %s", msg.SenderID)
	}

	_, err = env.chats.PostMessage(actorFor(buyer), room.ID, "")
	expectKind(t, err, KindValidation)

	_, err = env.chats.PostMessage(actorFor(stranger), room.ID, "me too")
	expectKind(t, err, KindForbidden)

	messages, err := env.chats.ListMessages(actorFor(student), room.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
}
