package people

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestMemberRepoScopesByChurch(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMemberRepo(db, testutil.Logger(t))

	grace := testutil.SeedChurch(t, ctx, db, "grace")
	hope := testutil.SeedChurch(t, ctx, db, "hope")
	ruth := testutil.SeedMember(t, ctx, db, grace.ID, "Ruth", "Moab")
	testutil.SeedMember(t, ctx, db, grace.ID, "Boaz", "Bethlehem")
	testutil.SeedMember(t, ctx, db, hope.ID, "Naomi", "Moab")

	got, err := repo.Get(ctx, nil, grace.ID, ruth.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "Ruth" {
		t.Fatalf("Get: unexpected member %+v", got)
	}

	if _, err := repo.Get(ctx, nil, hope.ID, ruth.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get cross-church: expected ErrNotFound, got %v", err)
	}

	list, total, err := repo.List(ctx, nil, grace.ID, MemberFilter{Query: "moab"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != ruth.ID {
		t.Fatalf("List: expected only Ruth, got total=%d %+v", total, list)
	}

	if err := repo.Update(ctx, nil, hope.ID, ruth.ID, map[string]any{"notes": "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update cross-church: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, nil, grace.ID, ruth.ID, map[string]any{"status": domain.MemberStatusInactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	list, _, err = repo.List(ctx, nil, grace.ID, MemberFilter{Status: domain.MemberStatusInactive})
	if err != nil || len(list) != 1 {
		t.Fatalf("List by status: err=%v len=%d", err, len(list))
	}

	n, err := repo.CountExisting(ctx, nil, grace.ID, []uuid.UUID{ruth.ID, uuid.New()})
	if err != nil || n != 1 {
		t.Fatalf("CountExisting: n=%d err=%v", n, err)
	}

	if err := repo.Delete(ctx, nil, grace.ID, ruth.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, nil, grace.ID, ruth.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get after delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemberRepoSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMemberRepo(db, testutil.Logger(t))
	grace := testutil.SeedChurch(t, ctx, db, "grace")
	literal := testutil.SeedMember(t, ctx, db, grace.ID, "ann_a", "lee")
	testutil.SeedMember(t, ctx, db, grace.ID, "annxa", "kim")

	got, total, err := repo.List(ctx, nil, grace.ID, MemberFilter{Query: "n_a"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != literal.ID {
		t.Fatalf("underscore matched as wildcard: total=%d got=%+v", total, got)
	}

	_, total, err = repo.List(ctx, nil, grace.ID, MemberFilter{Query: "%"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Fatalf("percent matched as wildcard: total=%d", total)
	}
}
