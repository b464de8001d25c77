package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type ChurchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, church *domain.Church) (*domain.Church, error)
	GetByID(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) (*domain.Church, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
}

type churchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChurchRepo(db *gorm.DB, baseLog *logger.Logger) ChurchRepo {
	return &churchRepo{db: db, log: baseLog.With("repo", "ChurchRepo")}
}

func (r *churchRepo) Create(ctx context.Context, tx *gorm.DB, church *domain.Church) (*domain.Church, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(church).Error; err != nil {
		return nil, fmt.Errorf("create church: %w", err)
	}
	return church, nil
}

func (r *churchRepo) GetByID(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) (*domain.Church, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var church domain.Church
	if err := transaction.WithContext(ctx).Where("id = ?", churchID).First(&church).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &church, nil
}

func (r *churchRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Church{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
