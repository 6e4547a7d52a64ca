package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types shared between the core services and the notifier, so
// nobody re-invents string literals per call site.
const (
	NotifyHireRequested     = "HIRE_REQUESTED"
	NotifyHireAccepted      = "HIRE_ACCEPTED"
	NotifyHireRejected      = "HIRE_REJECTED"
	NotifyHireCancelled     = "HIRE_CANCELLED"
	NotifyHireReminder      = "HIRE_REMINDER"
	NotifyContractCreated   = "CONTRACT_CREATED"
	NotifyContractSigned    = "CONTRACT_SIGNED"
	NotifyContractActive    = "CONTRACT_ACTIVE"
	NotifyContractReminder  = "CONTRACT_REMINDER"
	NotifyPaymentReceived   = "PAYMENT_RECEIVED"
	NotifyProgressUpdated   = "PROGRESS_UPDATED"
	NotifyContractCompleted = "CONTRACT_COMPLETED"
	NotifyOrderUpdated      = "ORDER_UPDATED"
	NotifyPayoutCredited    = "PAYOUT_CREDITED"
	NotifyReviewReceived    = "REVIEW_RECEIVED"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"not null;index" json:"user_id"`
	Type   string    `gorm:"size:40;not null" json:"type"`
	Title  string    `gorm:"size:255;not null" json:"title"`
	Body   string    `gorm:"type:text" json:"body"`
	IsRead bool      `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
