package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) GetHireRequest(id uuid.UUID) (*models.HireRequest, error) {
	var hr models.HireRequest
	err := s.db.Preload("Service").Preload("Buyer").Preload("Student").
		First(&hr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hr, nil
}

// GetHireRequestForUpdate locks the row for the rest of the transaction.
func (s *Store) GetHireRequestForUpdate(id uuid.UUID) (*models.HireRequest, error) {
	var hr models.HireRequest
	if err := s.locked().First(&hr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hr, nil
}

// HasOpenHireForService reports whether a non-terminal request already exists
// for this buyer and service.
func (s *Store) HasOpenHireForService(buyerID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.HireRequest{}).
		Where("buyer_id = ? AND service_id = ? AND status IN ?", buyerID, serviceID, models.HireNonTerminalStatuses).
		Count(&count).Error
	return count > 0, err
}

// HasOpenHireWithStudent reports whether the buyer already has a non-terminal
// request with this provider, for any service.
func (s *Store) HasOpenHireWithStudent(buyerID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.HireRequest{}).
		Where("buyer_id = ? AND student_id = ? AND status IN ?", buyerID, studentID, models.HireNonTerminalStatuses).
		Count(&count).Error
	return count > 0, err
}

// EnsureOpenHireIndexes creates the partial unique indexes backing the
// one-open-request rule per (buyer, service) and (buyer, student) pair.
// The COUNT checks in the create path can race under read committed; these
// indexes are the storage-level backstop. Partial indexes are beyond what
// gorm's tags express, so they run as raw DDL after migration.
func (s *Store) EnsureOpenHireIndexes() error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_hire_service
			ON hire_requests (buyer_id, service_id)
			WHERE status IN ('PENDING','ACCEPTED')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_hire_student
			ON hire_requests (buyer_id, student_id)
			WHERE status IN ('PENDING','ACCEPTED')`,
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateHireRequest(hr *models.HireRequest) error {
	return s.db.Create(hr).Error
}

func (s *Store) SaveHireRequest(hr *models.HireRequest) error {
	return s.db.Save(hr).Error
}

func (s *Store) ListHireRequestsForUser(userID uuid.UUID) ([]models.HireRequest, error) {
	var requests []models.HireRequest
	err := s.db.Preload("Service").Preload("Buyer").Preload("Student").
		Where("buyer_id = ? OR student_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListStaleOpenHireRequests returns pending requests created before the
// cutoff, used by the reminder job.
func (s *Store) ListStaleOpenHireRequests(cutoff time.Time) ([]models.HireRequest, error) {
	var requests []models.HireRequest
	err := s.db.Preload("Service").
		Where("status = ? AND created_at < ?", models.HireStatusPending, cutoff).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
