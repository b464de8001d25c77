package content

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

type GeneratedContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *domain.GeneratedContent) (*domain.GeneratedContent, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, contentID uuid.UUID) (*domain.GeneratedContent, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, kind string) ([]*domain.GeneratedContent, error)
	Count(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, churchID, contentID uuid.UUID) error
}

type generatedContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedContentRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedContentRepo {
	return &generatedContentRepo{db: db, log: baseLog.With("repo", "GeneratedContentRepo")}
}

func (r *generatedContentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *generatedContentRepo) Create(ctx context.Context, tx *gorm.DB, content *domain.GeneratedContent) (*domain.GeneratedContent, error) {
	if err := r.conn(tx).WithContext(ctx).Create(content).Error; err != nil {
		return nil, fmt.Errorf("create generated content: %w", err)
	}
	return content, nil
}

func (r *generatedContentRepo) Get(ctx context.Context, tx *gorm.DB, churchID, contentID uuid.UUID) (*domain.GeneratedContent, error) {
	var c domain.GeneratedContent
	err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, contentID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *generatedContentRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, kind string) ([]*domain.GeneratedContent, error) {
	q := r.conn(tx).WithContext(ctx).Where("church_id = ?", churchID)
	if k := strings.TrimSpace(kind); k != "" {
		q = q.Where("kind = ?", k)
	}
	var out []*domain.GeneratedContent
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *generatedContentRepo) Count(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.GeneratedContent{}).
		Where("church_id = ?", churchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *generatedContentRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, contentID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, contentID).
		Delete(&domain.GeneratedContent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
