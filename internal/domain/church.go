package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Church struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Slug      string         `gorm:"not null;uniqueIndex" json:"slug"`
	Timezone  string         `gorm:"not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Church) TableName() string { return "church" }

func (c *Church) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }

// StaffUser is a login for church staff. Congregation members are Member rows
// and do not log in.
type StaffUser struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Email        string         `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	Role         string         `gorm:"not null;default:'staff'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StaffUser) TableName() string { return "staff_user" }

func (u *StaffUser) BeforeCreate(*gorm.DB) error { ensureID(&u.ID); return nil }
