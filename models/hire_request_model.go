package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HireStatusPending   = "PENDING"
	HireStatusAccepted  = "ACCEPTED"
	HireStatusRejected  = "REJECTED"
	HireStatusCancelled = "CANCELLED"
)

// HireNonTerminalStatuses are the states in which a request still blocks a
// new request for the same buyer/service or buyer/student pair.
var HireNonTerminalStatuses = []string{HireStatusPending, HireStatusAccepted}

type HireRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID    uuid.UUID `gorm:"not null;index" json:"buyer_id"`
	StudentID  uuid.UUID `gorm:"not null;index" json:"student_id"`
	ServiceID  uuid.UUID `gorm:"not null;index" json:"service_id"`
	Message    string    `gorm:"type:text" json:"message"`
	PriceCents *int64    `json:"price_cents"`
	Status     string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	Buyer   User    `gorm:"foreignkey:BuyerID" json:"buyer,omitempty"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Service Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *HireRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

func (h *HireRequest) IsTerminal() bool {
	return h.Status == HireStatusRejected || h.Status == HireStatusCancelled
}

// AgreedPriceCents is the negotiated price, falling back to the service
// price snapshot when the buyer did not propose an override.
func (h *HireRequest) AgreedPriceCents(service *Service) int64 {
	if h.PriceCents != nil {
		return *h.PriceCents
	}
	return service.PriceCents
}
