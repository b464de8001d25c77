package people

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestAttendanceRepoRecordIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewAttendanceRepo(db, testutil.Logger(t))

	church := testutil.SeedChurch(t, ctx, db, "grace")
	a := testutil.SeedMember(t, ctx, db, church.ID, "Ann", "A")
	b := testutil.SeedMember(t, ctx, db, church.ID, "Ben", "B")
	sunday := testutil.Date(2024, time.March, 3)
	nextSunday := testutil.Date(2024, time.March, 10)

	rec := func(m domain.Member, date time.Time) *domain.AttendanceRecord {
		return &domain.AttendanceRecord{ChurchID: church.ID, MemberID: m.ID, ServiceDate: date, ServiceName: "morning"}
	}

	n, err := repo.Record(ctx, nil, []*domain.AttendanceRecord{rec(*a, sunday), rec(*b, sunday)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n != 2 {
		t.Fatalf("Record: expected 2 inserted, got %d", n)
	}

	n, err = repo.Record(ctx, nil, []*domain.AttendanceRecord{rec(*a, sunday), rec(*a, nextSunday)})
	if err != nil {
		t.Fatalf("Record again: %v", err)
	}
	if n != 1 {
		t.Fatalf("Record again: expected 1 inserted, got %d", n)
	}

	onDate, err := repo.ListByDate(ctx, nil, church.ID, sunday)
	if err != nil || len(onDate) != 2 {
		t.Fatalf("ListByDate: err=%v len=%d", err, len(onDate))
	}

	history, err := repo.ListByMember(ctx, nil, church.ID, a.ID)
	if err != nil || len(history) != 2 {
		t.Fatalf("ListByMember: err=%v len=%d", err, len(history))
	}

	counts, err := repo.CountsByDate(ctx, nil, church.ID, sunday, nextSunday)
	if err != nil {
		t.Fatalf("CountsByDate: %v", err)
	}
	if len(counts) != 2 || counts[0].Count != 2 || counts[1].Count != 1 {
		t.Fatalf("CountsByDate: unexpected %+v", counts)
	}
}
