package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom is opened when a hire request is accepted, one room per request.
type ChatRoom struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HireRequestID uuid.UUID `gorm:"not null;unique" json:"hire_request_id"`
	BuyerID       uuid.UUID `gorm:"not null;index" json:"buyer_id"`
	StudentID     uuid.UUID `gorm:"not null;index" json:"student_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID   uuid.UUID `gorm:"not null;index" json:"room_id"`
	SenderID uuid.UUID `gorm:"not null" json:"sender_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
