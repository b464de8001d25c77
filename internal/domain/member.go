package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"church_id"`
	FirstName string         `gorm:"not null" json:"first_name"`
	LastName  string         `gorm:"not null" json:"last_name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Status    string         `gorm:"not null;default:'active';index" json:"status"`
	JoinedAt  *time.Time     `json:"joined_at,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string { return "member" }

func (m *Member) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }

// AttendanceRecord marks one member present at one service. The unique index
// makes repeated check-ins for the same service a no-op.
type AttendanceRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"church_id"`
	MemberID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_service" json:"member_id"`
	ServiceDate time.Time `gorm:"not null;index;uniqueIndex:idx_attendance_member_service" json:"service_date"`
	ServiceName string    `gorm:"not null;uniqueIndex:idx_attendance_member_service" json:"service_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string { return "attendance_record" }

func (a *AttendanceRecord) BeforeCreate(*gorm.DB) error { ensureID(&a.ID); return nil }

// AttendanceCount is a per-service-date headcount.
type AttendanceCount struct {
	ServiceDate time.Time `json:"service_date"`
	ServiceName string    `json:"service_name"`
	Count       int64     `json:"count"`
}
