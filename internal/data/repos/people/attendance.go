package people

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type AttendanceRepo interface {
	// Record inserts records, skipping any already present for the same
	// member, date and service. Returns the number of rows inserted.
	Record(ctx context.Context, tx *gorm.DB, records []*domain.AttendanceRecord) (int64, error)
	ListByDate(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, serviceDate time.Time) ([]*domain.AttendanceRecord, error)
	ListByMember(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) ([]*domain.AttendanceRecord, error)
	CountsByDate(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, from, to time.Time) ([]domain.AttendanceCount, error)
}

type attendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceRepo {
	return &attendanceRepo{db: db, log: baseLog.With("repo", "AttendanceRepo")}
}

func (r *attendanceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *attendanceRepo) Record(ctx context.Context, tx *gorm.DB, records []*domain.AttendanceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	res := r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records)
	if res.Error != nil {
		return 0, fmt.Errorf("record attendance: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *attendanceRepo) ListByDate(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, serviceDate time.Time) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	if err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND service_date = ?", churchID, serviceDate).
		Order("service_name ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attendanceRepo) ListByMember(ctx context.Context, tx *gorm.DB, churchID, memberID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	if err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND member_id = ?", churchID, memberID).
		Order("service_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attendanceRepo) CountsByDate(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, from, to time.Time) ([]domain.AttendanceCount, error) {
	var out []domain.AttendanceCount
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Select("service_date, service_name, COUNT(*) AS count").
		Where("church_id = ? AND service_date >= ? AND service_date <= ?", churchID, from, to).
		Group("service_date, service_name").
		Order("service_date ASC, service_name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
