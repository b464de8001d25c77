package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type MemberInput struct {
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone" validate:"max=40"`
	Status    string     `json:"status" validate:"omitempty,oneof=active visitor inactive"`
	JoinedAt  *time.Time `json:"joined_at"`
	Notes     string     `json:"notes"`
}

type MemberPatch struct {
	FirstName *string    `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,max=40"`
	Status    *string    `json:"status" validate:"omitempty,oneof=active visitor inactive"`
	JoinedAt  *time.Time `json:"joined_at"`
	Notes     *string    `json:"notes"`
}

type MemberPage struct {
	Members []*domain.Member `json:"members"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type MemberService interface {
	List(ctx context.Context, filter repos.MemberFilter) (*MemberPage, error)
	Create(ctx context.Context, in MemberInput) (*domain.Member, error)
	Get(ctx context.Context, memberID uuid.UUID) (*domain.Member, error)
	Update(ctx context.Context, memberID uuid.UUID, patch MemberPatch) (*domain.Member, error)
	Delete(ctx context.Context, memberID uuid.UUID) error
}

type memberService struct {
	db         *gorm.DB
	log        *logger.Logger
	memberRepo repos.MemberRepo
}

func NewMemberService(db *gorm.DB, log *logger.Logger, memberRepo repos.MemberRepo) MemberService {
	return &memberService{
		db:         db,
		log:        log.With("service", "MemberService"),
		memberRepo: memberRepo,
	}
}

func (ms *memberService) List(ctx context.Context, filter repos.MemberFilter) (*MemberPage, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !validMemberStatus(filter.Status) {
		return nil, apierr.BadRequest("invalid_status", "status must be one of: active visitor inactive")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	members, total, err := ms.memberRepo.List(ctx, nil, churchID, filter)
	if err != nil {
		return nil, err
	}
	return &MemberPage{Members: members, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func validMemberStatus(s string) bool {
	switch s {
	case domain.MemberStatusActive, domain.MemberStatusVisitor, domain.MemberStatusInactive:
		return true
	}
	return false
}

func (ms *memberService) Create(ctx context.Context, in MemberInput) (*domain.Member, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.MemberStatusActive
	}
	m := &domain.Member{
		ChurchID:  churchID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Status:    status,
		JoinedAt:  in.JoinedAt,
		Notes:     in.Notes,
	}
	return ms.memberRepo.Create(ctx, nil, m)
}

func (ms *memberService) Get(ctx context.Context, memberID uuid.UUID) (*domain.Member, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	m, err := ms.memberRepo.Get(ctx, nil, churchID, memberID)
	if err != nil {
		return nil, notFound(err, "member_not_found", "get member")
	}
	return m, nil
}

func (ms *memberService) Update(ctx context.Context, memberID uuid.UUID, patch MemberPatch) (*domain.Member, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIfPresent(updates, "first_name", patch.FirstName)
	setIfPresent(updates, "last_name", patch.LastName)
	setIfPresent(updates, "email", patch.Email)
	setIfPresent(updates, "phone", patch.Phone)
	setIfPresent(updates, "status", patch.Status)
	setIfPresent(updates, "joined_at", patch.JoinedAt)
	setIfPresent(updates, "notes", patch.Notes)
	if len(updates) > 0 {
		if err := ms.memberRepo.Update(ctx, nil, churchID, memberID, updates); err != nil {
			return nil, notFound(err, "member_not_found", "update member")
		}
	}
	return ms.Get(ctx, memberID)
}

func (ms *memberService) Delete(ctx context.Context, memberID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := ms.memberRepo.Delete(ctx, nil, churchID, memberID); err != nil {
		return notFound(err, "member_not_found", "delete member")
	}
	return nil
}
