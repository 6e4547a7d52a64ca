package services

import (
	"github.com/google/uuid"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/repository"
)

type ChatService struct {
	store *repository.Store
}

func NewChatService(store *repository.Store) *ChatService {
	return &ChatService{store: store}
}

// authorize enforces the chat gate: the actor must be a party, the hire
// request must be accepted, and a fully signed contract must exist.
func (s *ChatService) authorize(actor models.Actor, room *models.ChatRoom) error {
	if actor.ID != room.BuyerID && actor.ID != room.StudentID {
		return ErrForbidden("you are not a participant of this chat")
	}

	hire, err := s.store.GetHireRequest(room.HireRequestID)
	if err != nil {
		return ErrInternal(err)
	}
	if hire.Status != models.HireStatusAccepted {
		return ErrInvalidOperation("chat is only available for accepted hire requests")
	}

	contract, err := s.store.GetContractByHireRequest(room.HireRequestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidOperation("chat opens once a contract exists and both parties have signed")
		}
		return ErrInternal(err)
	}
	if !contract.IsFullySigned() {
		return ErrInvalidOperation("chat opens once both parties have signed the contract")
	}
	return nil
}

func (s *ChatService) RoomForHireRequest(actor models.Actor, hireRequestID uuid.UUID) (*models.ChatRoom, error) {
	room, err := s.store.GetChatRoomByHireRequest(hireRequestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("chat room not found")
		}
		return nil, ErrInternal(err)
	}
	if actor.ID != room.BuyerID && actor.ID != room.StudentID {
		return nil, ErrForbidden("you are not a participant of this chat")
	}
	return room, nil
}

func (s *ChatService) PostMessage(actor models.Actor, roomID uuid.UUID, content string) (*models.Message, error) {
	if content == "" {
		return nil, ErrValidation("message content is required", map[string]string{"content": "must not be empty"})
	}

	room, err := s.store.GetChatRoom(roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("chat room not found")
		}
		return nil, ErrInternal(err)
	}
	if err := s.authorize(actor, room); err != nil {
		return nil, asServiceError(err)
	}

	msg := models.Message{
		RoomID:   room.ID,
		SenderID: actor.ID,
		Content:  content,
	}
	if err := s.store.CreateMessage(&msg); err != nil {
		return nil, ErrInternal(err)
	}
	return &msg, nil
}

func (s *ChatService) ListMessages(actor models.Actor, roomID uuid.UUID) ([]models.Message, error) {
	room, err := s.store.GetChatRoom(roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound("chat room not found")
		}
		return nil, ErrInternal(err)
	}
	if err := s.authorize(actor, room); err != nil {
		return nil, asServiceError(err)
	}
	return s.store.ListMessages(roomID)
}
