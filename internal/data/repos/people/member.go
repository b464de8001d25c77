package people

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type MemberFilter struct {
	// Query matches first name, last name or email, case-insensitively.
	Query  string
	Status string
	Limit  int
	Offset int
}

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *domain.Member) (*domain.Member, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) (*domain.Member, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter MemberFilter) ([]*domain.Member, int64, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) error
	CountExisting(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, memberIDs []uuid.UUID) (int64, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (r *memberRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *memberRepo) Create(ctx context.Context, tx *gorm.DB, member *domain.Member) (*domain.Member, error) {
	if err := r.conn(tx).WithContext(ctx).Create(member).Error; err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

func (r *memberRepo) Get(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) (*domain.Member, error) {
	var m domain.Member
	err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, memberID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *memberRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter MemberFilter) ([]*domain.Member, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&domain.Member{}).Where("church_id = ?", churchID)
	if s := strings.TrimSpace(filter.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Query)); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\'",
			like, like, like,
		)
	}

	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var results []*domain.Member
	if err := q.Order("last_name ASC, first_name ASC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *memberRepo) Update(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.Member{}).
		Where("church_id = ? AND id = ?", churchID, memberID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, memberID).
		Delete(&domain.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepo) CountExisting(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, memberIDs []uuid.UUID) (int64, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Member{}).
		Where("church_id = ? AND id IN ?", churchID, memberIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
