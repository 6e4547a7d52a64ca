package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Service").Preload("Buyer").Preload("Student").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) GetOrderForUpdate(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.locked().First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) FindOrderByBuyerService(buyerID, serviceID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.First(&order, "buyer_id = ? AND service_id = ?", buyerID, serviceID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderForHire locates the order belonging to a hire request, first by
// the direct link, then by the buyer/student/service triple for rows created
// before the link existed.
func (s *Store) FindOrderForHire(hr *models.HireRequest) (*models.Order, error) {
	var order models.Order
	err := s.db.First(&order, "hire_request_id = ?", hr.ID).Error
	if err == nil {
		return &order, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	err = s.db.First(&order, "buyer_id = ? AND student_id = ? AND service_id = ?",
		hr.BuyerID, hr.StudentID, hr.ServiceID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *Store) SaveOrder(order *models.Order) error {
	return s.db.Save(order).Error
}

func (s *Store) ListOrdersForUser(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Service").
		Where("buyer_id = ? OR student_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) CountOrdersByStatus(status string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
