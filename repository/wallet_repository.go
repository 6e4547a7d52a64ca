package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) CreateWalletEntry(entry *models.WalletEntry) error {
	return s.db.Create(entry).Error
}

func (s *Store) HasWalletEntry(reference string) (bool, error) {
	var count int64
	err := s.db.Model(&models.WalletEntry{}).
		Where("reference = ?", reference).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) WalletBalance(userID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	err := s.db.Model(&models.WalletEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount_cents), 0) AS total").
		Scan(&result).Error
	return result.Total, err
}

func (s *Store) ListWalletEntries(userID uuid.UUID) ([]models.WalletEntry, error) {
	var entries []models.WalletEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
