package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/payments"
	"github.com/campusworks/unihire/repository"
)

// PlatformFeeCents is 10% of the contract price, rounded half up. The payout
// is the remainder, so fee + payout always equals the price exactly.
func PlatformFeeCents(priceCents int64) int64 {
	return (priceCents + 5) / 10
}

type ContractService struct {
	store    *repository.Store
	notifier *notifications.Notifier
	gateway  payments.Gateway
}

func NewContractService(store *repository.Store, notifier *notifications.Notifier, gateway payments.Gateway) *ContractService {
	return &ContractService{store: store, notifier: notifier, gateway: gateway}
}

type CreateContractInput struct {
	HireRequestID   uuid.UUID
	Deliverables    []string
	TimelineDays    int
	AdditionalTerms string
}

// Create draws up a contract from an accepted hire request. Only the
// provider may create it, and only once per request. The associated order is
// located or created inside the same transaction and linked immediately;
// there is no later backfill path.
func (s *ContractService) Create(actor models.Actor, input CreateContractInput) (*models.Contract, error) {
	if len(input.Deliverables) == 0 {
		return nil, ErrValidation("at least one deliverable is required", map[string]string{"deliverables": "must not be empty"})
	}
	if input.TimelineDays <= 0 {
		return nil, ErrValidation("timeline must be a positive number of days", map[string]string{"timeline_days": "must be > 0"})
	}

	var contract *models.Contract
	var buyerID uuid.UUID
	var serviceTitle string

	err := s.store.Transaction(func(tx *repository.Store) error {
		hire, err := tx.GetHireRequestForUpdate(input.HireRequestID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("hire request not found")
			}
			return ErrInternal(err)
		}
		if hire.StudentID != actor.ID {
			return ErrForbidden("only the provider can create a contract for this request")
		}
		if hire.Status != models.HireStatusAccepted {
			return ErrInvalidOperation(
				fmt.Sprintf("a contract requires an accepted hire request, this one is %s", hire.Status)).WithEntity(hire)
		}

		exists, err := tx.HasContractForHireRequest(hire.ID)
		if err != nil {
			return ErrInternal(err)
		}
		if exists {
			return ErrConflict("a contract already exists for this hire request")
		}

		service, err := tx.GetService(hire.ServiceID)
		if err != nil {
			return ErrInternal(err)
		}
		serviceTitle = service.Title
		buyerID = hire.BuyerID

		price := hire.AgreedPriceCents(service)
		fee := PlatformFeeCents(price)

		order, err := tx.FindOrderForHire(hire)
		if err != nil {
			if !repository.IsNotFound(err) {
				return ErrInternal(err)
			}
			// The acceptance path creates the order, but cover rows from
			// before that was transactional.
			order = &models.Order{
				BuyerID:       hire.BuyerID,
				StudentID:     hire.StudentID,
				ServiceID:     hire.ServiceID,
				HireRequestID: &hire.ID,
				PriceCents:    price,
				Status:        models.OrderStatusPending,
			}
			if err := tx.CreateOrder(order); err != nil {
				if repository.IsDuplicate(err) {
					return ErrConflict("this buyer has already purchased this service")
				}
				return ErrInternal(err)
			}
		} else if order.HireRequestID == nil {
			order.HireRequestID = &hire.ID
			if err := tx.SaveOrder(order); err != nil {
				return ErrInternal(err)
			}
		}

		contract = &models.Contract{
			HireRequestID:      hire.ID,
			BuyerID:            hire.BuyerID,
			StudentID:          hire.StudentID,
			ServiceID:          hire.ServiceID,
			OrderID:            &order.ID,
			PriceCents:         price,
			PlatformFeeCents:   fee,
			StudentPayoutCents: price - fee,
			Status:             models.ContractStatusDraft,
			PaymentStatus:      models.PaymentStatusPending,
			ProgressStatus:     models.ProgressNotStarted,
			Deliverables:       models.StringList(input.Deliverables),
			TimelineDays:       input.TimelineDays,
			AdditionalTerms:    input.AdditionalTerms,
		}
		if err := tx.CreateContract(contract); err != nil {
			if repository.IsDuplicate(err) {
				return ErrConflict("a contract already exists for this hire request")
			}
			return ErrInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(buyerID, models.NotifyContractCreated,
		"Contract ready to sign",
		fmt.Sprintf("The provider drew up a contract for '%s'. Review and sign it.", serviceTitle))

	return contract, nil
}

type SignContractInput struct {
	Signature string
	IPAddress string
	UserAgent string
}

// Sign records one party's signature. Each party signs at most once; when
// the second signature lands the contract becomes ACTIVE.
func (s *ContractService) Sign(actor models.Actor, contractID uuid.UUID, input SignContractInput) (*models.Contract, error) {
	if input.Signature == "" {
		return nil, ErrValidation("signature is required", map[string]string{"signature": "must not be empty"})
	}

	var contract *models.Contract
	var activated bool

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		contract, err = tx.GetContractForUpdate(contractID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("contract not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != contract.BuyerID && actor.ID != contract.StudentID {
			return ErrForbidden("you are not a party to this contract")
		}
		if contract.Status == models.ContractStatusCompleted {
			return ErrInvalidOperation("this contract is already completed").WithEntity(contract)
		}

		signed, err := tx.HasSignature(contract.ID, actor.ID)
		if err != nil {
			return ErrInternal(err)
		}
		if signed {
			return ErrInvalidOperation("you have already signed this contract").WithEntity(contract)
		}

		sig := models.ContractSignature{
			ContractID: contract.ID,
			UserID:     actor.ID,
			Signature:  input.Signature,
			IPAddress:  input.IPAddress,
			UserAgent:  input.UserAgent,
		}
		if err := tx.CreateSignature(&sig); err != nil {
			if repository.IsDuplicate(err) {
				return ErrInvalidOperation("you have already signed this contract").WithEntity(contract)
			}
			return ErrInternal(err)
		}

		if actor.ID == contract.BuyerID {
			contract.IsSignedByBuyer = true
		} else {
			contract.IsSignedByStudent = true
		}
		if contract.IsFullySigned() {
			now := time.Now()
			contract.Status = models.ContractStatusActive
			contract.SignedAt = &now
			activated = true
		}
		return tx.SaveContract(contract)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	if activated {
		s.notifier.NotifyMany([]uuid.UUID{contract.BuyerID, contract.StudentID}, models.NotifyContractActive,
			"Contract active", "Both parties have signed. The contract is now active and awaiting payment.")
	} else {
		counterpart := contract.BuyerID
		if actor.ID == contract.BuyerID {
			counterpart = contract.StudentID
		}
		s.notifier.Notify(counterpart, models.NotifyContractSigned,
			"Contract signed", "The other party has signed the contract. Your signature is still needed.")
	}

	return contract, nil
}

// ProcessPayment captures the escrow amount for a fully signed contract.
// Buyer-only, and only once: a second call finds PaymentStatus PAID and is
// rejected.
func (s *ContractService) ProcessPayment(actor models.Actor, contractID uuid.UUID) (*models.Contract, error) {
	var contract *models.Contract

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		contract, err = tx.GetContractForUpdate(contractID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("contract not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != contract.BuyerID {
			return ErrForbidden("only the buyer can pay for this contract")
		}
		if !contract.IsFullySigned() {
			return ErrInvalidOperation("contract must be signed by both parties before payment").WithEntity(contract)
		}
		if contract.PaymentStatus != models.PaymentStatusPending {
			return ErrConflict("payment has already been processed for this contract").WithEntity(contract)
		}

		if _, err := s.gateway.Capture(contract.ID.String(), contract.PriceCents); err != nil {
			return ErrInternal(err)
		}

		now := time.Now()
		contract.PaymentStatus = models.PaymentStatusPaid
		contract.PaidAt = &now
		contract.ProgressStatus = models.ProgressInProgress
		if err := tx.SaveContract(contract); err != nil {
			return ErrInternal(err)
		}

		order, err := s.orderForContract(tx, contract)
		if err != nil {
			return err
		}
		if order.Status == models.OrderStatusCancelled {
			return ErrConflict("the order for this contract has been cancelled").WithEntity(contract)
		}
		order.Status = models.OrderStatusPaid
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifier.Notify(contract.StudentID, models.NotifyPaymentReceived,
		"Payment received",
		fmt.Sprintf("The buyer has paid %d cents into escrow. You can start the work.", contract.PriceCents))

	return contract, nil
}

type UpdateProgressInput struct {
	Status          string
	Notes           string
	MarkAsCompleted bool
}

// UpdateProgress lets the provider report progress on an active contract,
// or mark the work completed, which releases the payout.
func (s *ContractService) UpdateProgress(actor models.Actor, contractID uuid.UUID, input UpdateProgressInput) (*models.Contract, error) {
	var contract *models.Contract
	var payoutCents int64

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		contract, err = tx.GetContractForUpdate(contractID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("contract not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != contract.StudentID {
			return ErrForbidden("only the provider can update progress on this contract")
		}
		if contract.Status != models.ContractStatusActive {
			return ErrInvalidOperation(
				fmt.Sprintf("progress can only be updated on an active contract, this one is %s", contract.Status)).WithEntity(contract)
		}

		if !input.MarkAsCompleted {
			switch input.Status {
			case models.ProgressNotStarted, models.ProgressInProgress:
			case models.ProgressCompleted:
				return ErrInvalidOperation("use the completion flow to mark the work completed").WithEntity(contract)
			default:
				return ErrValidation("unknown progress status", map[string]string{"status": "must be NOT_STARTED or IN_PROGRESS"})
			}
			contract.ProgressStatus = input.Status
			contract.ProgressNotes = input.Notes
			return tx.SaveContract(contract)
		}

		payoutCents = contract.StudentPayoutCents
		return s.complete(tx, contract, input.Notes)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	if input.MarkAsCompleted {
		s.notifyCompletion(contract, payoutCents)
	} else {
		s.notifier.Notify(contract.BuyerID, models.NotifyProgressUpdated,
			"Progress update", "The provider has updated the progress on your contract.")
	}

	return contract, nil
}

// MarkCompleted is the direct completion entry point, with the same
// preconditions and effects as the completion branch of UpdateProgress.
func (s *ContractService) MarkCompleted(actor models.Actor, contractID uuid.UUID, completionNotes string) (*models.Contract, error) {
	var contract *models.Contract
	var payoutCents int64

	err := s.store.Transaction(func(tx *repository.Store) error {
		var err error
		contract, err = tx.GetContractForUpdate(contractID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound("contract not found")
			}
			return ErrInternal(err)
		}
		if actor.ID != contract.StudentID {
			return ErrForbidden("only the provider can mark this contract completed")
		}
		if contract.Status != models.ContractStatusActive {
			return ErrInvalidOperation(
				fmt.Sprintf("only an active contract can be completed, this one is %s", contract.Status)).WithEntity(contract)
		}
		payoutCents = contract.StudentPayoutCents
		return s.complete(tx, contract, completionNotes)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.notifyCompletion(contract, payoutCents)
	return contract, nil
}

// complete flips the contract and its order to COMPLETED and credits the
// provider's payout, all inside the caller's transaction. The wallet
// reference is unique per contract, so a retried completion can never credit
// twice even if the status checks were raced.
func (s *ContractService) complete(tx *repository.Store, contract *models.Contract, notes string) error {
	if contract.PaymentStatus != models.PaymentStatusPaid {
		return ErrInvalidOperation("contract must be paid before it can be completed").WithEntity(contract)
	}

	service, err := tx.GetService(contract.ServiceID)
	if err != nil {
		return ErrInternal(err)
	}

	now := time.Now()
	contract.Status = models.ContractStatusCompleted
	contract.ProgressStatus = models.ProgressCompleted
	contract.PaymentStatus = models.PaymentStatusReleased
	contract.CompletionNotes = notes
	contract.CompletedAt = &now
	if err := tx.SaveContract(contract); err != nil {
		return ErrInternal(err)
	}

	order, err := s.orderForContract(tx, contract)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusCancelled {
		return ErrConflict("the order for this contract has been cancelled").WithEntity(contract)
	}
	order.Status = models.OrderStatusCompleted
	if err := tx.SaveOrder(order); err != nil {
		return ErrInternal(err)
	}

	reference := walletReferenceForContract(contract.ID)
	credited, err := tx.HasWalletEntry(reference)
	if err != nil {
		return ErrInternal(err)
	}
	if credited {
		return ErrConflict("the payout for this contract has already been credited").WithEntity(contract)
	}

	if _, err := s.gateway.Release(contract.ID.String(), contract.StudentPayoutCents); err != nil {
		return ErrInternal(err)
	}

	entry := models.WalletEntry{
		UserID:      contract.StudentID,
		AmountCents: contract.StudentPayoutCents,
		Reason:      fmt.Sprintf("Payout for '%s'", service.Title),
		Reference:   reference,
	}
	if err := tx.CreateWalletEntry(&entry); err != nil {
		if repository.IsDuplicate(err) {
			return ErrConflict("the payout for this contract has already been credited").WithEntity(contract)
		}
		return ErrInternal(err)
	}
	return nil
}

func (s *ContractService) notifyCompletion(contract *models.Contract, payoutCents int64) {
	s.notifier.Notify(contract.BuyerID, models.NotifyContractCompleted,
		"Work completed", "The provider has marked the work completed. You can now leave a review.")
	s.notifier.Notify(contract.StudentID, models.NotifyPayoutCredited,
		"Payout credited",
		fmt.Sprintf("%d cents have been credited to your wallet.", payoutCents))
}

// orderForContract resolves the contract's order. The link is set at
// creation time; the create-if-missing branch only covers contracts written
// before that invariant held.
func (s *ContractService) orderForContract(tx *repository.Store, contract *models.Contract) (*models.Order, error) {
	if contract.OrderID != nil {
		order, err := tx.GetOrderForUpdate(*contract.OrderID)
		if err == nil {
			return order, nil
		}
		if !repository.IsNotFound(err) {
			return nil, ErrInternal(err)
		}
	}
	order := &models.Order{
		BuyerID:       contract.BuyerID,
		StudentID:     contract.StudentID,
		ServiceID:     contract.ServiceID,
		HireRequestID: &contract.HireRequestID,
		PriceCents:    contract.PriceCents,
		Status:        models.OrderStatusPending,
	}
	if err := tx.CreateOrder(order); err != nil {
		return nil, ErrInternal(err)
	}
	contract.OrderID = &order.ID
	if err := tx.SaveContract(contract); err != nil {
		return nil, ErrInternal(err)
	}
	return order, nil
}

func walletReferenceForContract(contractID uuid.UUID) string {
	return "contract:" + contractID.String()
}

func (s *ContractService) Get(actor models.Actor, contractID uuid.UUID) (*models.Contract, error) {
	contract, err := s.store.GetContract(contractID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("contract not found")
		}
		return nil, ErrInternal(err)
	}
	if actor.ID != contract.BuyerID && actor.ID != contract.StudentID && !actor.IsAdmin() {
		return nil, ErrForbidden("you are not a party to this contract")
	}
	return contract, nil
}

func (s *ContractService) ListForUser(userID uuid.UUID) ([]models.Contract, error) {
	contracts, err := s.store.ListContractsForUser(userID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	return contracts, nil
}
