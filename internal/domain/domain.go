// Package domain holds the persisted church-management models. Every
// tenant-owned model carries ChurchID and is only ever read or written through
// a repository scoped to that church.
package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

const (
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
	RoleTreasurer = "treasurer"
)

const (
	MemberStatusActive   = "active"
	MemberStatusVisitor  = "visitor"
	MemberStatusInactive = "inactive"
)

const (
	StreamStatusIdle         = "idle"
	StreamStatusLive         = "live"
	StreamStatusDisconnected = "disconnected"
)

const (
	ContentKindSermon     = "sermon"
	ContentKindEmail      = "email"
	ContentKindWorshipSet = "worship_set"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// AllModels lists every table for auto-migration.
func AllModels() []any {
	return []any{
		&Church{},
		&StaffUser{},
		&Member{},
		&AttendanceRecord{},
		&Group{},
		&GroupMembership{},
		&Song{},
		&ServicePlan{},
		&ServicePlanItem{},
		&LiveStream{},
		&Expense{},
		&GeneratedContent{},
	}
}
