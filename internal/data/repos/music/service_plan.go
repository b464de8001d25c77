package music

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type ServicePlanRepo interface {
	// Create inserts the plan together with its items.
	Create(ctx context.Context, tx *gorm.DB, plan *domain.ServicePlan) (*domain.ServicePlan, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID) (*domain.ServicePlan, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, from, to *time.Time) ([]*domain.ServicePlan, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID, updates map[string]any) error
	// ReplaceItems deletes the plan's items and inserts the given ones.
	ReplaceItems(ctx context.Context, tx *gorm.DB, planID uuid.UUID, items []domain.ServicePlanItem) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID) error
}

type servicePlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServicePlanRepo(db *gorm.DB, baseLog *logger.Logger) ServicePlanRepo {
	return &servicePlanRepo{db: db, log: baseLog.With("repo", "ServicePlanRepo")}
}

func (r *servicePlanRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(q *gorm.DB) *gorm.DB {
		return q.Order("position ASC")
	}).Preload("Items.Song")
}

func (r *servicePlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *domain.ServicePlan) (*domain.ServicePlan, error) {
	if err := r.conn(tx).WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("create service plan: %w", err)
	}
	return plan, nil
}

func (r *servicePlanRepo) Get(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID) (*domain.ServicePlan, error) {
	var plan domain.ServicePlan
	err := preloadItems(r.conn(tx).WithContext(ctx)).
		Where("church_id = ? AND id = ?", churchID, planID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *servicePlanRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, from, to *time.Time) ([]*domain.ServicePlan, error) {
	q := preloadItems(r.conn(tx).WithContext(ctx)).Where("church_id = ?", churchID)
	if from != nil {
		q = q.Where("service_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("service_date <= ?", *to)
	}
	var out []*domain.ServicePlan
	if err := q.Order("service_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *servicePlanRepo) Update(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.ServicePlan{}).
		Where("church_id = ? AND id = ?", churchID, planID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *servicePlanRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, planID uuid.UUID, items []domain.ServicePlanItem) error {
	transaction := r.conn(tx).WithContext(ctx)
	if err := transaction.Where("service_plan_id = ?", planID).Delete(&domain.ServicePlanItem{}).Error; err != nil {
		return fmt.Errorf("clear plan items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ServicePlanID = planID
	}
	if err := transaction.Create(&items).Error; err != nil {
		return fmt.Errorf("insert plan items: %w", err)
	}
	return nil
}

func (r *servicePlanRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, planID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("church_id = ? AND id = ?", churchID, planID).Delete(&domain.ServicePlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return txx.Where("service_plan_id = ?", planID).Delete(&domain.ServicePlanItem{}).Error
	})
}
