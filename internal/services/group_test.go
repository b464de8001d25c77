package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
)

func TestGroupService_MembershipLifecycle(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewGroupService(db, log, repos.NewGroupRepo(db, log), repos.NewMemberRepo(db, log))
	church, ctx := seedTenant(t, db, "grace")
	ann := testutil.SeedMember(t, context.Background(), db, church.ID, "ann", "lee")
	bo := testutil.SeedMember(t, context.Background(), db, church.ID, "bo", "kim")

	g, err := svc.Create(ctx, GroupInput{Name: " Tuesday Study ", LeaderMemberID: &ann.ID, MeetingDay: "Tuesday"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Name != "Tuesday Study" {
		t.Fatalf("name not trimmed: %q", g.Name)
	}

	if _, err := svc.AddMember(ctx, g.ID, GroupMemberInput{MemberID: ann.ID, Role: "leader"}); err != nil {
		t.Fatalf("AddMember leader: %v", err)
	}
	members, err := svc.AddMember(ctx, g.ID, GroupMemberInput{MemberID: bo.ID})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(members))
	}
	for _, m := range members {
		if m.MemberID == bo.ID && m.Role != "member" {
			t.Fatalf("default role: %q", m.Role)
		}
	}

	// Adding again changes the role instead of duplicating.
	members, err = svc.AddMember(ctx, g.ID, GroupMemberInput{MemberID: bo.ID, Role: "leader"})
	if err != nil {
		t.Fatalf("AddMember again: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected upsert, got %d memberships", len(members))
	}

	if err := svc.RemoveMember(ctx, g.ID, bo.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	members, err = svc.ListMembers(ctx, g.ID)
	if err != nil || len(members) != 1 {
		t.Fatalf("ListMembers: %d, err=%v", len(members), err)
	}
	err = svc.RemoveMember(ctx, g.ID, bo.ID)
	requireAPIError(t, err, http.StatusNotFound, "membership_not_found")

	loc := "Room 4"
	g, err = svc.Update(ctx, g.ID, GroupPatch{Location: &loc})
	if err != nil || g.Location != loc {
		t.Fatalf("Update: %+v, err=%v", g, err)
	}
	if err := svc.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Get(ctx, g.ID)
	requireAPIError(t, err, http.StatusNotFound, "group_not_found")
}

func TestGroupService_TenantChecks(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewGroupService(db, log, repos.NewGroupRepo(db, log), repos.NewMemberRepo(db, log))
	_, ctx := seedTenant(t, db, "grace")
	other, otherCtx := seedTenant(t, db, "hope")
	foreign := testutil.SeedMember(t, context.Background(), db, other.ID, "cy", "park")

	_, err := svc.Create(ctx, GroupInput{Name: "Youth", LeaderMemberID: &foreign.ID})
	requireAPIError(t, err, http.StatusNotFound, "leader_not_found")

	_, err = svc.Create(ctx, GroupInput{Name: "Youth", MeetingDay: "Someday"})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	g, err := svc.Create(ctx, GroupInput{Name: "Youth"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.AddMember(ctx, g.ID, GroupMemberInput{MemberID: foreign.ID})
	requireAPIError(t, err, http.StatusNotFound, "member_not_found")

	_, err = svc.AddMember(ctx, g.ID, GroupMemberInput{})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	_, err = svc.ListMembers(otherCtx, g.ID)
	requireAPIError(t, err, http.StatusNotFound, "group_not_found")

	_, err = svc.AddMember(ctx, uuid.New(), GroupMemberInput{MemberID: foreign.ID})
	requireAPIError(t, err, http.StatusNotFound, "group_not_found")
}
