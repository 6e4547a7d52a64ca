package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
)

func (s *Store) CreateChatRoom(room *models.ChatRoom) error {
	return s.db.Create(room).Error
}

func (s *Store) GetChatRoom(id uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) GetChatRoomByHireRequest(hireRequestID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.First(&room, "hire_request_id = ?", hireRequestID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) CreateMessage(msg *models.Message) error {
	return s.db.Create(msg).Error
}

func (s *Store) ListMessages(roomID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Preload("Sender").
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
