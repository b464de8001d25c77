package tenancy

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

type StaffUserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.StaffUser) (*domain.StaffUser, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.StaffUser, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.StaffUser, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type staffUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStaffUserRepo(db *gorm.DB, baseLog *logger.Logger) StaffUserRepo {
	return &staffUserRepo{db: db, log: baseLog.With("repo", "StaffUserRepo")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *staffUserRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.StaffUser) (*domain.StaffUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	user.Email = normalizeEmail(user.Email)
	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create staff user: %w", err)
	}
	return user, nil
}

func (r *staffUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.StaffUser, error) {
	return r.first(ctx, tx, "id = ?", userID)
}

func (r *staffUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.StaffUser, error) {
	return r.first(ctx, tx, "email = ?", normalizeEmail(email))
}

func (r *staffUserRepo) first(ctx context.Context, tx *gorm.DB, query string, arg any) (*domain.StaffUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var user domain.StaffUser
	if err := transaction.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *staffUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.StaffUser{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
