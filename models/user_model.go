package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleBuyer   = "BUYER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Email      string    `gorm:"size:255;not null;unique" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Role       string    `gorm:"size:20;not null;default:'BUYER'" json:"role"`
	University *string   `gorm:"size:255" json:"university"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Actor is the authenticated identity a request acts as.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsBuyer() bool   { return a.Role == RoleBuyer }
