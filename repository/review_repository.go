package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) HasReviewForOrder(orderID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Review{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateReview(review *models.Review) error {
	return s.db.Create(review).Error
}

func (s *Store) ListReviewsForStudent(studentID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("Buyer").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Store) AverageRatingForStudent(studentID uuid.UUID) (float64, error) {
	var result struct {
		Avg float64
	}
	err := s.db.Model(&models.Review{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(AVG(rating), 0) AS avg").
		Scan(&result).Error
	return result.Avg, err
}
