package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) GetContract(id uuid.UUID) (*models.Contract, error) {
	var ct models.Contract
	err := s.db.Preload("Service").Preload("Buyer").Preload("Student").
		First(&ct, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Store) GetContractForUpdate(id uuid.UUID) (*models.Contract, error) {
	var ct models.Contract
	if err := s.locked().First(&ct, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Store) GetContractByHireRequest(hireRequestID uuid.UUID) (*models.Contract, error) {
	var ct models.Contract
	if err := s.db.First(&ct, "hire_request_id = ?", hireRequestID).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

// GetContractByOrder finds the contract governing an order, by the direct
// link or by the order's hire request.
func (s *Store) GetContractByOrder(order *models.Order) (*models.Contract, error) {
	var ct models.Contract
	err := s.db.First(&ct, "order_id = ?", order.ID).Error
	if err == nil {
		return &ct, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	if order.HireRequestID == nil {
		return nil, err
	}
	if err := s.db.First(&ct, "hire_request_id = ?", *order.HireRequestID).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Store) HasContractForHireRequest(hireRequestID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Contract{}).
		Where("hire_request_id = ?", hireRequestID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateContract(ct *models.Contract) error {
	return s.db.Create(ct).Error
}

func (s *Store) SaveContract(ct *models.Contract) error {
	return s.db.Save(ct).Error
}

func (s *Store) ListContractsForUser(userID uuid.UUID) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.Preload("Service").
		Where("buyer_id = ? OR student_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (s *Store) HasSignature(contractID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.ContractSignature{}).
		Where("contract_id = ? AND user_id = ?", contractID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateSignature(sig *models.ContractSignature) error {
	return s.db.Create(sig).Error
}

// ListUnsignedContracts returns draft contracts created before the cutoff
// that are still missing at least one signature, for the reminder job.
func (s *Store) ListUnsignedContracts(cutoff time.Time) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.Preload("Service").
		Where("status = ? AND created_at < ?", models.ContractStatusDraft, cutoff).
		Where("is_signed_by_buyer = ? OR is_signed_by_student = ?", false, false).
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
