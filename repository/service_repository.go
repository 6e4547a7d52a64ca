package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) GetService(id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.db.Preload("Owner").First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Store) CreateService(svc *models.Service) error {
	return s.db.Create(svc).Error
}

func (s *Store) SaveService(svc *models.Service) error {
	return s.db.Save(svc).Error
}

func (s *Store) ListActiveServices(category string) ([]models.Service, error) {
	var services []models.Service
	q := s.db.Preload("Owner").Where("is_active = ?", true).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) ListServicesByOwner(ownerID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) CountServices() (int64, error) {
	var count int64
	err := s.db.Model(&models.Service{}).Count(&count).Error
	return count, err
}
