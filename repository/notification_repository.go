package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *Store) ListNotifications(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(id, userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (s *Store) MarkAllNotificationsRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
