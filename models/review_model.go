package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"not null;unique" json:"order_id"`
	BuyerID   uuid.UUID `gorm:"not null" json:"buyer_id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Order Order `gorm:"foreignkey:OrderID" json:"order,omitempty"`
	Buyer User  `gorm:"foreignkey:BuyerID" json:"buyer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
