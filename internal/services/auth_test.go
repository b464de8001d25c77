package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/ctxutil"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAuthService(db, log, repos.NewChurchRepo(db, log), repos.NewStaffUserRepo(db, log), "test-secret", time.Hour)
}

func TestAuthService_RegisterLoginToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		ChurchName: "Grace Fellowship",
		Email:      "pastor@grace.example",
		Password:   "password123",
		FirstName:  "Ana",
		LastName:   "Ruiz",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Church.Slug != "grace-fellowship" || reg.Church.Timezone != "UTC" {
		t.Fatalf("unexpected church: %+v", reg.Church)
	}
	if reg.User.Role != domain.RoleAdmin || reg.User.ChurchID != reg.Church.ID {
		t.Fatalf("unexpected user: %+v", reg.User)
	}
	if reg.ExpiresIn != 3600 {
		t.Fatalf("expires_in: got %d", reg.ExpiresIn)
	}

	login, err := svc.Login(ctx, "Pastor@Grace.example", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	authed, err := svc.SetContextFromToken(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != reg.User.ID || rd.ChurchID != reg.Church.ID || rd.Role != domain.RoleAdmin {
		t.Fatalf("unexpected request data: %+v", rd)
	}
	me, err := svc.Me(authed)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.ID != reg.User.ID {
		t.Fatalf("Me returned %s, want %s", me.ID, reg.User.ID)
	}
}

func TestAuthService_Failures(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	in := RegisterInput{ChurchName: "Hope", Email: "a@hope.example", Password: "password123", FirstName: "A", LastName: "B"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx, in)
	requireAPIError(t, err, http.StatusConflict, "email_taken")

	bad := in
	bad.Email = "b@hope.example"
	bad.Password = "short"
	_, err = svc.Register(ctx, bad)
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	bad = in
	bad.Email = "c@hope.example"
	bad.Timezone = "Mars/Olympus"
	_, err = svc.Register(ctx, bad)
	requireAPIError(t, err, http.StatusBadRequest, "invalid_timezone")

	_, err = svc.Login(ctx, in.Email, "wrong-password")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
	_, err = svc.Login(ctx, "nobody@hope.example", "password123")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	_, err = svc.SetContextFromToken(ctx, "not-a-jwt")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
	_, err = svc.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuthService_SameChurchNameGetsDistinctSlug(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	first, err := svc.Register(ctx, RegisterInput{ChurchName: "First Baptist", Email: "one@example.com", Password: "password123", FirstName: "A", LastName: "B"})
	if err != nil {
		t.Fatalf("Register first: %v", err)
	}
	second, err := svc.Register(ctx, RegisterInput{ChurchName: "First Baptist", Email: "two@example.com", Password: "password123", FirstName: "C", LastName: "D"})
	if err != nil {
		t.Fatalf("Register second: %v", err)
	}
	if first.Church.Slug == second.Church.Slug {
		t.Fatalf("slugs collide: %q", first.Church.Slug)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Grace Fellowship":        "grace-fellowship",
		"  St. Mark's Church!! ":  "st-mark-s-church",
		"Église 2.0":              "glise-2-0",
		"---":                     "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
