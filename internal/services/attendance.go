package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

const defaultServiceName = "main"

type AttendanceInput struct {
	ServiceDate string      `json:"service_date"`
	ServiceName string      `json:"service_name"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

type AttendanceResult struct {
	ServiceDate string `json:"service_date"`
	ServiceName string `json:"service_name"`
	Recorded    int64  `json:"recorded"`
	Duplicates  int64  `json:"duplicates"`
}

type AttendanceService interface {
	Record(ctx context.Context, in AttendanceInput) (*AttendanceResult, error)
	ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error)
	Summary(ctx context.Context, from, to string) ([]domain.AttendanceCount, error)
	MemberHistory(ctx context.Context, memberID uuid.UUID) ([]*domain.AttendanceRecord, error)
}

type attendanceService struct {
	db             *gorm.DB
	log            *logger.Logger
	memberRepo     repos.MemberRepo
	attendanceRepo repos.AttendanceRepo
}

func NewAttendanceService(db *gorm.DB, log *logger.Logger, memberRepo repos.MemberRepo, attendanceRepo repos.AttendanceRepo) AttendanceService {
	return &attendanceService{
		db:             db,
		log:            log.With("service", "AttendanceService"),
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (as *attendanceService) Record(ctx context.Context, in AttendanceInput) (*AttendanceResult, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate("service_date", in.ServiceDate)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ServiceName)
	if name == "" {
		name = defaultServiceName
	}

	seen := make(map[uuid.UUID]bool, len(in.MemberIDs))
	ids := make([]uuid.UUID, 0, len(in.MemberIDs))
	for _, id := range in.MemberIDs {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, apierr.BadRequest("invalid_request", "member_ids must list at least one member")
	}

	var inserted int64
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := as.memberRepo.CountExisting(ctx, tx, churchID, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return apierr.BadRequest("unknown_member", "member_ids contains members that do not belong to this church")
		}
		records := make([]*domain.AttendanceRecord, 0, len(ids))
		for _, id := range ids {
			records = append(records, &domain.AttendanceRecord{
				ChurchID:    churchID,
				MemberID:    id,
				ServiceDate: date,
				ServiceName: name,
			})
		}
		inserted, err = as.attendanceRepo.Record(ctx, tx, records)
		return err
	})
	if err != nil {
		return nil, err
	}
	as.log.Debug("attendance recorded", "service_date", date.Format(dateLayout), "recorded", inserted)
	return &AttendanceResult{
		ServiceDate: date.Format(dateLayout),
		ServiceName: name,
		Recorded:    inserted,
		Duplicates:  int64(len(ids)) - inserted,
	}, nil
}

func (as *attendanceService) ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	return as.attendanceRepo.ListByDate(ctx, nil, churchID, d)
}

// Summary returns per-service headcounts between from and to inclusive. Both
// default to a window ending today and starting twelve weeks earlier.
func (as *attendanceService) Summary(ctx context.Context, from, to string) ([]domain.AttendanceCount, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	toDate := truncateDate(time.Now())
	if p, err := ParseOptionalDate("to", to); err != nil {
		return nil, err
	} else if p != nil {
		toDate = *p
	}
	fromDate := toDate.AddDate(0, 0, -7*12)
	if p, err := ParseOptionalDate("from", from); err != nil {
		return nil, err
	} else if p != nil {
		fromDate = *p
	}
	if fromDate.After(toDate) {
		return nil, apierr.BadRequest("invalid_range", "from must not be after to")
	}
	counts, err := as.attendanceRepo.CountsByDate(ctx, nil, churchID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}
	return counts, nil
}

func (as *attendanceService) MemberHistory(ctx context.Context, memberID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := as.memberRepo.Get(ctx, nil, churchID, memberID); err != nil {
		return nil, notFound(err, "member_not_found", "get member")
	}
	return as.attendanceRepo.ListByMember(ctx, nil, churchID, memberID)
}
