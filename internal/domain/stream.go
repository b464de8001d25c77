package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LiveStream mirrors a live stream configured at the video provider.
// ProviderStreamID is the provider's id and is how webhooks find the row.
type LiveStream struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `json:"description,omitempty"`
	ProviderStreamID string         `gorm:"not null;uniqueIndex" json:"provider_stream_id"`
	PlaybackID       string         `json:"playback_id,omitempty"`
	Status           string         `gorm:"not null;default:'idle';index" json:"status"`
	StartedAt        *time.Time     `json:"started_at,omitempty"`
	EndedAt          *time.Time     `json:"ended_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LiveStream) TableName() string { return "live_stream" }

func (s *LiveStream) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }
