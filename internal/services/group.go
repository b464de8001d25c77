package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

type GroupInput struct {
	Name           string     `json:"name" validate:"required,max=200"`
	Description    string     `json:"description"`
	LeaderMemberID *uuid.UUID `json:"leader_member_id"`
	MeetingDay     string     `json:"meeting_day" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	MeetingTime    string     `json:"meeting_time" validate:"max=20"`
	Location       string     `json:"location" validate:"max=200"`
}

type GroupPatch struct {
	Name           *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	LeaderMemberID *uuid.UUID `json:"leader_member_id"`
	MeetingDay     *string    `json:"meeting_day" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	MeetingTime    *string    `json:"meeting_time" validate:"omitempty,max=20"`
	Location       *string    `json:"location" validate:"omitempty,max=200"`
}

type GroupMemberInput struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Role     string    `json:"role" validate:"omitempty,oneof=leader member"`
}

type GroupService interface {
	List(ctx context.Context) ([]*domain.Group, error)
	Create(ctx context.Context, in GroupInput) (*domain.Group, error)
	Get(ctx context.Context, groupID uuid.UUID) (*domain.Group, error)
	Update(ctx context.Context, groupID uuid.UUID, patch GroupPatch) (*domain.Group, error)
	Delete(ctx context.Context, groupID uuid.UUID) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMembership, error)
	AddMember(ctx context.Context, groupID uuid.UUID, in GroupMemberInput) ([]*domain.GroupMembership, error)
	RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error
}

type groupService struct {
	db         *gorm.DB
	log        *logger.Logger
	groupRepo  repos.GroupRepo
	memberRepo repos.MemberRepo
}

func NewGroupService(db *gorm.DB, log *logger.Logger, groupRepo repos.GroupRepo, memberRepo repos.MemberRepo) GroupService {
	return &groupService{
		db:         db,
		log:        log.With("service", "GroupService"),
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
	}
}

func (gs *groupService) List(ctx context.Context) ([]*domain.Group, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return gs.groupRepo.List(ctx, nil, churchID)
}

func (gs *groupService) checkLeader(ctx context.Context, churchID uuid.UUID, leaderID *uuid.UUID) error {
	if leaderID == nil {
		return nil
	}
	if _, err := gs.memberRepo.Get(ctx, nil, churchID, *leaderID); err != nil {
		return notFound(err, "leader_not_found", "get leader")
	}
	return nil
}

func (gs *groupService) Create(ctx context.Context, in GroupInput) (*domain.Group, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := gs.checkLeader(ctx, churchID, in.LeaderMemberID); err != nil {
		return nil, err
	}
	return gs.groupRepo.Create(ctx, nil, &domain.Group{
		ChurchID:       churchID,
		Name:           in.Name,
		Description:    in.Description,
		LeaderMemberID: in.LeaderMemberID,
		MeetingDay:     in.MeetingDay,
		MeetingTime:    in.MeetingTime,
		Location:       in.Location,
	})
}

func (gs *groupService) Get(ctx context.Context, groupID uuid.UUID) (*domain.Group, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	g, err := gs.groupRepo.Get(ctx, nil, churchID, groupID)
	if err != nil {
		return nil, notFound(err, "group_not_found", "get group")
	}
	return g, nil
}

func (gs *groupService) Update(ctx context.Context, groupID uuid.UUID, patch GroupPatch) (*domain.Group, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	if err := gs.checkLeader(ctx, churchID, patch.LeaderMemberID); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIfPresent(updates, "name", patch.Name)
	setIfPresent(updates, "description", patch.Description)
	setIfPresent(updates, "leader_member_id", patch.LeaderMemberID)
	setIfPresent(updates, "meeting_day", patch.MeetingDay)
	setIfPresent(updates, "meeting_time", patch.MeetingTime)
	setIfPresent(updates, "location", patch.Location)
	if len(updates) > 0 {
		if err := gs.groupRepo.Update(ctx, nil, churchID, groupID, updates); err != nil {
			return nil, notFound(err, "group_not_found", "update group")
		}
	}
	return gs.Get(ctx, groupID)
}

func (gs *groupService) Delete(ctx context.Context, groupID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := gs.groupRepo.Delete(ctx, nil, churchID, groupID); err != nil {
		return notFound(err, "group_not_found", "delete group")
	}
	return nil
}

func (gs *groupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMembership, error) {
	if _, err := gs.Get(ctx, groupID); err != nil {
		return nil, err
	}
	return gs.groupRepo.ListMembers(ctx, nil, groupID)
}

// AddMember adds the member to the group, or changes their role if they are
// already in it.
func (gs *groupService) AddMember(ctx context.Context, groupID uuid.UUID, in GroupMemberInput) ([]*domain.GroupMembership, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := gs.groupRepo.Get(ctx, nil, churchID, groupID); err != nil {
		return nil, notFound(err, "group_not_found", "get group")
	}
	if _, err := gs.memberRepo.Get(ctx, nil, churchID, in.MemberID); err != nil {
		return nil, notFound(err, "member_not_found", "get member")
	}
	role := in.Role
	if role == "" {
		role = "member"
	}
	if err := gs.groupRepo.UpsertMember(ctx, nil, &domain.GroupMembership{
		GroupID:  groupID,
		MemberID: in.MemberID,
		Role:     role,
	}); err != nil {
		return nil, err
	}
	return gs.groupRepo.ListMembers(ctx, nil, groupID)
}

func (gs *groupService) RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error {
	if _, err := gs.Get(ctx, groupID); err != nil {
		return err
	}
	if err := gs.groupRepo.RemoveMember(ctx, nil, groupID, memberID); err != nil {
		return notFound(err, "membership_not_found", "remove group member")
	}
	return nil
}
