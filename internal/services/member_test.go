package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
)

func TestMemberService_CRUD(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewMemberService(db, log, repos.NewMemberRepo(db, log))
	_, ctx := seedTenant(t, db, "grace")

	m, err := svc.Create(ctx, MemberInput{FirstName: "  Ann ", LastName: "Lee", Email: " Ann@Example.COM "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.FirstName != "Ann" || m.Email != "ann@example.com" || m.Status != domain.MemberStatusActive {
		t.Fatalf("unexpected member: %+v", m)
	}
	if _, err := svc.Create(ctx, MemberInput{FirstName: "Bo", LastName: "Kim", Status: domain.MemberStatusVisitor}); err != nil {
		t.Fatalf("Create visitor: %v", err)
	}

	page, err := svc.List(ctx, repos.MemberFilter{Query: "LEE"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || len(page.Members) != 1 || page.Members[0].ID != m.ID {
		t.Fatalf("query filter: %+v", page)
	}
	if page.Limit != 50 {
		t.Fatalf("default limit: %d", page.Limit)
	}
	page, err = svc.List(ctx, repos.MemberFilter{Status: domain.MemberStatusVisitor, Limit: 1000})
	if err != nil {
		t.Fatalf("List visitors: %v", err)
	}
	if page.Total != 1 || page.Limit != 200 {
		t.Fatalf("status filter: %+v", page)
	}

	phone := "555-0100"
	updated, err := svc.Update(ctx, m.ID, MemberPatch{Phone: &phone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phone != phone || updated.LastName != "Lee" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Get(ctx, m.ID)
	requireAPIError(t, err, http.StatusNotFound, "member_not_found")
}

func TestMemberService_Errors(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewMemberService(db, log, repos.NewMemberRepo(db, log))
	_, ctx := seedTenant(t, db, "grace")
	other, _ := seedTenant(t, db, "hope")
	foreign := testutil.SeedMember(t, context.Background(), db, other.ID, "cy", "park")

	_, err := svc.Create(ctx, MemberInput{FirstName: "Ann"})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	_, err = svc.Create(ctx, MemberInput{FirstName: "Ann", LastName: "Lee", Status: "member"})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	_, err = svc.List(ctx, repos.MemberFilter{Status: "gone"})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_status")

	_, err = svc.Get(ctx, foreign.ID)
	requireAPIError(t, err, http.StatusNotFound, "member_not_found")

	name := "X"
	_, err = svc.Update(ctx, foreign.ID, MemberPatch{FirstName: &name})
	requireAPIError(t, err, http.StatusNotFound, "member_not_found")

	err = svc.Delete(ctx, uuid.New())
	requireAPIError(t, err, http.StatusNotFound, "member_not_found")

	_, err = svc.Get(context.Background(), foreign.ID)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}
