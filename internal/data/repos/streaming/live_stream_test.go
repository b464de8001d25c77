package streaming

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestLiveStreamRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewLiveStreamRepo(db, testutil.Logger(t))

	grace := testutil.SeedChurch(t, ctx, db, "grace")
	hope := testutil.SeedChurch(t, ctx, db, "hope")
	s := testutil.SeedLiveStream(t, ctx, db, grace.ID, "mux-abc")

	byProvider, err := repo.GetByProviderID(ctx, nil, "mux-abc")
	if err != nil || byProvider.ID != s.ID {
		t.Fatalf("GetByProviderID: err=%v got=%+v", err, byProvider)
	}
	if _, err := repo.GetByProviderID(ctx, nil, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByProviderID missing: expected ErrNotFound, got %v", err)
	}

	if err := repo.Update(ctx, nil, grace.ID, s.ID, map[string]any{"status": domain.StreamStatusLive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	live, err := repo.ListByStatus(ctx, nil, grace.ID, domain.StreamStatusLive)
	if err != nil || len(live) != 1 {
		t.Fatalf("ListByStatus: err=%v len=%d", err, len(live))
	}
	live, err = repo.ListByStatus(ctx, nil, hope.ID, domain.StreamStatusLive)
	if err != nil || len(live) != 0 {
		t.Fatalf("ListByStatus other church: err=%v len=%d", err, len(live))
	}

	if err := repo.Delete(ctx, nil, hope.ID, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete cross-church: expected ErrNotFound, got %v", err)
	}
}

func TestLiveStreamRepoLockByProviderID(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewLiveStreamRepo(db, testutil.Logger(t))
	grace := testutil.SeedChurch(t, ctx, db, "grace")
	s := testutil.SeedLiveStream(t, ctx, db, grace.ID, "mux-abc")

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.LockByProviderID(ctx, tx, "mux-abc")
		if err != nil {
			return err
		}
		if locked.ID != s.ID {
			t.Fatalf("locked wrong row: %+v", locked)
		}
		_, err = repo.LockByProviderID(ctx, tx, "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("missing: expected ErrNotFound, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}
