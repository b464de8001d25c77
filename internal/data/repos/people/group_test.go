package people

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestGroupRepoMembership(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewGroupRepo(db, testutil.Logger(t))

	church := testutil.SeedChurch(t, ctx, db, "grace")
	member := testutil.SeedMember(t, ctx, db, church.ID, "Lydia", "Thyatira")

	g, err := repo.Create(ctx, nil, &domain.Group{ChurchID: church.ID, Name: "Romans study", MeetingDay: "Wednesday"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpsertMember(ctx, nil, &domain.GroupMembership{GroupID: g.ID, MemberID: member.ID, Role: "member"}); err != nil {
		t.Fatalf("UpsertMember: %v", err)
	}
	if err := repo.UpsertMember(ctx, nil, &domain.GroupMembership{GroupID: g.ID, MemberID: member.ID, Role: "leader"}); err != nil {
		t.Fatalf("UpsertMember again: %v", err)
	}

	members, err := repo.ListMembers(ctx, nil, g.ID)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 || members[0].Role != "leader" || members[0].Member == nil || members[0].Member.FirstName != "Lydia" {
		t.Fatalf("ListMembers: unexpected %+v", members)
	}

	if err := repo.RemoveMember(ctx, nil, g.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if err := repo.RemoveMember(ctx, nil, g.ID, member.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("RemoveMember twice: expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, nil, church.ID, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, err := repo.List(ctx, nil, church.ID)
	if err != nil || len(list) != 0 {
		t.Fatalf("List after delete: err=%v len=%d", err, len(list))
	}
}
