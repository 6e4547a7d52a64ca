package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContractStatusDraft     = "DRAFT"
	ContractStatusActive    = "ACTIVE"
	ContractStatusCompleted = "COMPLETED"
)

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusReleased = "RELEASED"
)

const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

type Contract struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	HireRequestID uuid.UUID  `gorm:"not null;unique" json:"hire_request_id"`
	BuyerID       uuid.UUID  `gorm:"not null;index" json:"buyer_id"`
	StudentID     uuid.UUID  `gorm:"not null;index" json:"student_id"`
	ServiceID     uuid.UUID  `gorm:"not null" json:"service_id"`
	OrderID       *uuid.UUID `gorm:"index" json:"order_id"`

	PriceCents         int64 `gorm:"not null" json:"price_cents"`
	PlatformFeeCents   int64 `gorm:"not null" json:"platform_fee_cents"`
	StudentPayoutCents int64 `gorm:"not null" json:"student_payout_cents"`

	Status          string `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	PaymentStatus   string `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	ProgressStatus  string `gorm:"size:20;not null;default:'NOT_STARTED'" json:"progress_status"`
	ProgressNotes   string `gorm:"type:text" json:"progress_notes"`
	CompletionNotes string `gorm:"type:text" json:"completion_notes"`

	IsSignedByBuyer   bool `gorm:"default:false" json:"is_signed_by_buyer"`
	IsSignedByStudent bool `gorm:"default:false" json:"is_signed_by_student"`

	Deliverables    StringList `gorm:"type:text" json:"deliverables"`
	TimelineDays    int        `gorm:"not null" json:"timeline_days"`
	AdditionalTerms string     `gorm:"type:text" json:"additional_terms"`

	SignedAt    *time.Time `json:"signed_at"`
	PaidAt      *time.Time `json:"paid_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Buyer   User    `gorm:"foreignkey:BuyerID" json:"buyer,omitempty"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Service Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ct *Contract) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return nil
}

func (ct *Contract) IsFullySigned() bool {
	return ct.IsSignedByBuyer && ct.IsSignedByStudent
}

type ContractSignature struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"not null;uniqueIndex:idx_contract_signer" json:"contract_id"`
	UserID     uuid.UUID `gorm:"not null;uniqueIndex:idx_contract_signer" json:"user_id"`
	Signature  string    `gorm:"type:text;not null" json:"signature"`
	IPAddress  string    `gorm:"size:64" json:"ip_address"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}

func (cs *ContractSignature) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}
