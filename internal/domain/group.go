package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a bible-study or small group.
type Group struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description,omitempty"`
	LeaderMemberID *uuid.UUID     `gorm:"type:uuid" json:"leader_member_id,omitempty"`
	MeetingDay     string         `json:"meeting_day,omitempty"`
	MeetingTime    string         `json:"meeting_time,omitempty"`
	Location       string         `json:"location,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "study_group" }

func (g *Group) BeforeCreate(*gorm.DB) error { ensureID(&g.ID); return nil }

type GroupMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_member" json:"group_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_member" json:"member_id"`
	Role      string    `gorm:"not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (GroupMembership) TableName() string { return "group_membership" }

func (gm *GroupMembership) BeforeCreate(*gorm.DB) error { ensureID(&gm.ID); return nil }
