package finance

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestExpenseRepoSummary(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewExpenseRepo(db, testutil.Logger(t))

	grace := testutil.SeedChurch(t, ctx, db, "grace")
	hope := testutil.SeedChurch(t, ctx, db, "hope")

	add := func(church domain.Church, category string, cents int64, day int) {
		t.Helper()
		_, err := repo.Create(ctx, nil, &domain.Expense{
			ChurchID:    church.ID,
			Category:    category,
			AmountCents: cents,
			Currency:    "USD",
			SpentOn:     testutil.Date(2024, time.May, day),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	add(*grace, "utilities", 12000, 1)
	add(*grace, "utilities", 3000, 15)
	add(*grace, "missions", 50000, 20)
	add(*hope, "utilities", 99999, 2)

	summary, err := repo.SummaryByCategory(ctx, nil, grace.ID, ExpenseFilter{})
	if err != nil {
		t.Fatalf("SummaryByCategory: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("SummaryByCategory: expected 2 categories, got %+v", summary)
	}
	if summary[0].Category != "missions" || summary[0].TotalCents != 50000 || summary[0].Count != 1 {
		t.Fatalf("SummaryByCategory missions: %+v", summary[0])
	}
	if summary[1].Category != "utilities" || summary[1].TotalCents != 15000 || summary[1].Count != 2 {
		t.Fatalf("SummaryByCategory utilities: %+v", summary[1])
	}

	to := testutil.Date(2024, time.May, 10)
	early, err := repo.List(ctx, nil, grace.ID, ExpenseFilter{To: &to})
	if err != nil || len(early) != 1 {
		t.Fatalf("List to May 10: err=%v len=%d", err, len(early))
	}
}
