package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GeneratedContent is an AI-drafted sermon, email or worship set. Rows only
// exist for successful generations.
type GeneratedContent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Kind      string         `gorm:"not null;index" json:"kind"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"not null" json:"body"`
	Params    datatypes.JSON `json:"params,omitempty"`
	Model     string         `json:"model,omitempty"`
	CreatedBy *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GeneratedContent) TableName() string { return "generated_content" }

func (g *GeneratedContent) BeforeCreate(*gorm.DB) error { ensureID(&g.ID); return nil }
