package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusPaid       = "PAID"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusDisputed   = "DISPUTED"
)

type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID       uuid.UUID  `gorm:"not null;uniqueIndex:idx_buyer_service" json:"buyer_id"`
	ServiceID     uuid.UUID  `gorm:"not null;uniqueIndex:idx_buyer_service" json:"service_id"`
	StudentID     uuid.UUID  `gorm:"not null;index" json:"student_id"`
	HireRequestID *uuid.UUID `gorm:"index" json:"hire_request_id"`
	PriceCents    int64      `gorm:"not null" json:"price_cents"`
	Status        string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	Buyer   User    `gorm:"foreignkey:BuyerID" json:"buyer,omitempty"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Service Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
