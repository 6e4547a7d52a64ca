package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/payments"
	"github.com/campusworks/unihire/repository"
)

type testEnv struct {
	store     *repository.Store
	hires     *HireService
	contracts *ContractService
	orders    *OrderService
	reviews   *ReviewService
	chats     *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.HireRequest{},
		&models.Contract{},
		&models.ContractSignature{},
		&models.Order{},
		&models.WalletEntry{},
		&models.Review{},
		&models.Notification{},
		&models.ChatRoom{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	store := repository.NewStore(db)
	if err := store.EnsureOpenHireIndexes(); err != nil {
		t.Fatalf("failed to create hire uniqueness indexes: %v", err)
	}
	notifier := notifications.NewNotifier(store, nil)
	gateway := payments.NewSimulatedGateway()

	return &testEnv{
		store:     store,
		hires:     NewHireService(store, notifier),
		contracts: NewContractService(store, notifier, gateway),
		orders:    NewOrderService(store, notifier, gateway),
		reviews:   NewReviewService(store, notifier),
		chats:     NewChatService(store),
	}
}

func (e *testEnv) createUser(t *testing.T, role string) *models.User {
	t.Helper()
	user := models.User{
		FullName:   "Test " + role,
		Email:      fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password:   "hashed",
		Role:       role,
		IsVerified: true,
	}
	if err := e.store.CreateUser(&user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func (e *testEnv) createService(t *testing.T, owner *models.User, priceCents int64) *models.Service {
	t.Helper()
	service := models.Service{
		OwnerID:     owner.ID,
		Title:       "Logo design",
		Description: "A logo designed from scratch",
		PriceCents:  priceCents,
		IsActive:    true,
	}
	if err := e.store.CreateService(&service); err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return &service
}

func actorFor(user *models.User) models.Actor {
	return models.Actor{ID: user.ID, Role: user.Role}
}

// hireAccepted runs the negotiation up to acceptance and returns the request.
func (e *testEnv) hireAccepted(t *testing.T, buyer, student *models.User, service *models.Service) *models.HireRequest {
	t.Helper()
	hire, err := e.hires.Create(actorFor(buyer), CreateHireInput{
		ServiceID: service.ID,
		Message:   "I need this done by Friday",
	})
	if err != nil {
		t.Fatalf("failed to create hire request: %v", err)
	}
	hire, err = e.hires.Accept(actorFor(student), hire.ID)
	if err != nil {
		t.Fatalf("failed to accept hire request: %v", err)
	}
	return hire
}

// contractPaid drives a fresh hire through contract creation, both
// signatures and payment.
func (e *testEnv) contractPaid(t *testing.T, buyer, student *models.User, service *models.Service) *models.Contract {
	t.Helper()
	hire := e.hireAccepted(t, buyer, student, service)

	contract, err := e.contracts.Create(actorFor(student), CreateContractInput{
		HireRequestID: hire.ID,
		Deliverables:  []string{"logo"},
		TimelineDays:  5,
	})
	if err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}
	if _, err := e.contracts.Sign(actorFor(buyer), contract.ID, SignContractInput{Signature: "buyer-sig"}); err != nil {
		t.Fatalf("buyer failed to sign: %v", err)
	}
	if _, err := e.contracts.Sign(actorFor(student), contract.ID, SignContractInput{Signature: "student-sig"}); err != nil {
		t.Fatalf("student failed to sign: %v", err)
	}
	contract, err = e.contracts.ProcessPayment(actorFor(buyer), contract.ID)
	if err != nil {
		t.Fatalf("failed to process payment: %v", err)
	}
	return contract
}

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	if KindOf(err) != kind {
		t.Fatalf("expected error kind %d, got %d (%v)", kind, KindOf(err), err)
	}
}
