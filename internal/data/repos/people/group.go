package people

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *domain.Group) (*domain.Group, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID) (*domain.Group, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) ([]*domain.Group, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID) error

	// UpsertMember adds the member or updates their role if already present.
	UpsertMember(ctx context.Context, tx *gorm.DB, membership *domain.GroupMembership) error
	RemoveMember(ctx context.Context, tx *gorm.DB, groupID, memberID uuid.UUID) error
	ListMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*domain.GroupMembership, error)
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (r *groupRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *groupRepo) Create(ctx context.Context, tx *gorm.DB, group *domain.Group) (*domain.Group, error) {
	if err := r.conn(tx).WithContext(ctx).Create(group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (r *groupRepo) Get(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID) (*domain.Group, error) {
	var g domain.Group
	err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, groupID).
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) ([]*domain.Group, error) {
	var out []*domain.Group
	if err := r.conn(tx).WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *groupRepo) Update(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.Group{}).
		Where("church_id = ? AND id = ?", churchID, groupID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *groupRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, groupID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("church_id = ? AND id = ?", churchID, groupID).Delete(&domain.Group{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return txx.Where("group_id = ?", groupID).Delete(&domain.GroupMembership{}).Error
	})
}

func (r *groupRepo) UpsertMember(ctx context.Context, tx *gorm.DB, membership *domain.GroupMembership) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}, {Name: "member_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(membership).Error
}

func (r *groupRepo) RemoveMember(ctx context.Context, tx *gorm.DB, groupID, memberID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Delete(&domain.GroupMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *groupRepo) ListMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*domain.GroupMembership, error) {
	var out []*domain.GroupMembership
	if err := r.conn(tx).WithContext(ctx).
		Preload("Member").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
