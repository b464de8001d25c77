package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

type ExpenseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, expense *domain.Expense) (*domain.Expense, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter ExpenseFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID) error
	SummaryByCategory(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter ExpenseFilter) ([]domain.ExpenseCategoryTotal, error)
}

type expenseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseRepo {
	return &expenseRepo{db: db, log: baseLog.With("repo", "ExpenseRepo")}
}

func (r *expenseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func applyFilter(q *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if filter.From != nil {
		q = q.Where("spent_on >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("spent_on <= ?", *filter.To)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		q = q.Where("category = ?", c)
	}
	return q
}

func (r *expenseRepo) Create(ctx context.Context, tx *gorm.DB, expense *domain.Expense) (*domain.Expense, error) {
	if err := r.conn(tx).WithContext(ctx).Create(expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

func (r *expenseRepo) Get(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID) (*domain.Expense, error) {
	var e domain.Expense
	err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, expenseID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter ExpenseFilter) ([]*domain.Expense, error) {
	q := applyFilter(r.conn(tx).WithContext(ctx).Where("church_id = ?", churchID), filter)
	var out []*domain.Expense
	if err := q.Order("spent_on DESC, created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expenseRepo) Update(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.Expense{}).
		Where("church_id = ? AND id = ?", churchID, expenseID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, expenseID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, expenseID).
		Delete(&domain.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepo) SummaryByCategory(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, filter ExpenseFilter) ([]domain.ExpenseCategoryTotal, error) {
	q := r.conn(tx).WithContext(ctx).
		Model(&domain.Expense{}).
		Select("category, SUM(amount_cents) AS total_cents, COUNT(*) AS count").
		Where("church_id = ?", churchID)
	q = applyFilter(q, filter)

	var out []domain.ExpenseCategoryTotal
	if err := q.Group("category").Order("category ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
