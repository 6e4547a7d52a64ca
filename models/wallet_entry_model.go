package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletEntry is an append-only credit record. Rows are never updated or
// deleted; a provider's balance is the sum of their entries. Reference is
// unique so the same payout can never be credited twice.
type WalletEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"not null;index" json:"user_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Reason      string    `gorm:"size:255;not null" json:"reason"`
	Reference   string    `gorm:"size:128;not null;uniqueIndex" json:"reference"`

	CreatedAt time.Time `json:"created_at"`
}

func (w *WalletEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
