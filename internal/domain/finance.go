package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Category    string         `gorm:"not null;index" json:"category"`
	Description string         `json:"description,omitempty"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Currency    string         `gorm:"not null;default:'USD'" json:"currency"`
	SpentOn     time.Time      `gorm:"not null;index" json:"spent_on"`
	Vendor      string         `json:"vendor,omitempty"`
	RecordedBy  *uuid.UUID     `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Expense) TableName() string { return "expense" }

func (e *Expense) BeforeCreate(*gorm.DB) error { ensureID(&e.ID); return nil }

type ExpenseCategoryTotal struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
	Count      int64  `json:"count"`
}
