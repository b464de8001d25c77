package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Song struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Title      string         `gorm:"not null" json:"title"`
	Artist     string         `json:"artist,omitempty"`
	DefaultKey string         `json:"default_key,omitempty"`
	TempoBPM   int            `json:"tempo_bpm,omitempty"`
	CCLINumber string         `gorm:"column:ccli_number" json:"ccli_number,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Song) TableName() string { return "song" }

func (s *Song) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }

// ServicePlan is the music schedule for one service.
type ServicePlan struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"church_id"`
	Title       string            `gorm:"not null" json:"title"`
	ServiceDate time.Time         `gorm:"not null;index" json:"service_date"`
	Notes       string            `json:"notes,omitempty"`
	Items       []ServicePlanItem `gorm:"foreignKey:ServicePlanID" json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (ServicePlan) TableName() string { return "service_plan" }

func (p *ServicePlan) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }

type ServicePlanItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ServicePlanID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"service_plan_id"`
	Position       int        `gorm:"not null" json:"position"`
	SongID         *uuid.UUID `gorm:"type:uuid" json:"song_id,omitempty"`
	SongKey        string     `json:"song_key,omitempty"`
	LeaderMemberID *uuid.UUID `gorm:"type:uuid" json:"leader_member_id,omitempty"`
	Notes          string     `json:"notes,omitempty"`

	Song *Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

func (ServicePlanItem) TableName() string { return "service_plan_item" }

func (i *ServicePlanItem) BeforeCreate(*gorm.DB) error { ensureID(&i.ID); return nil }
