package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
)

func TestMusicService_ReplacePlanSwapsItems(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewMusicService(db, log, repos.NewSongRepo(db, log), repos.NewServicePlanRepo(db, log), repos.NewMemberRepo(db, log))
	church, ctx := seedTenant(t, db, "grace")
	bg := context.Background()
	s1 := testutil.SeedSong(t, bg, db, church.ID, "Amazing Grace", "G")
	s2 := testutil.SeedSong(t, bg, db, church.ID, "How Great Thou Art", "Bb")
	leader := testutil.SeedMember(t, bg, db, church.ID, "ann", "lee")

	plan, err := svc.CreatePlan(ctx, ServicePlanInput{
		Title:       "Easter",
		ServiceDate: "2026-04-05",
		Items: []PlanItemInput{
			{SongID: &s1.ID},
			{SongID: &s2.ID, LeaderMemberID: &leader.ID},
		},
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if len(plan.Items) != 2 || plan.Items[0].Position != 1 || plan.Items[1].Position != 2 {
		t.Fatalf("unexpected items: %+v", plan.Items)
	}
	if plan.Items[1].Song == nil || plan.Items[1].Song.Title != "How Great Thou Art" {
		t.Fatalf("song not preloaded: %+v", plan.Items[1])
	}

	replaced, err := svc.ReplacePlan(ctx, plan.ID, ServicePlanInput{
		Title:       "Easter Sunday",
		ServiceDate: "2026-04-05",
		Items:       []PlanItemInput{{SongID: &s2.ID, SongKey: "C", Position: 1}},
	})
	if err != nil {
		t.Fatalf("ReplacePlan: %v", err)
	}
	if replaced.Title != "Easter Sunday" || len(replaced.Items) != 1 || replaced.Items[0].SongKey != "C" {
		t.Fatalf("unexpected replaced plan: %+v", replaced)
	}

	missing := uuid.New()
	_, err = svc.ReplacePlan(ctx, plan.ID, ServicePlanInput{
		Title:       "Broken",
		ServiceDate: "2026-04-05",
		Items:       []PlanItemInput{{SongID: &missing}},
	})
	requireAPIError(t, err, http.StatusBadRequest, "unknown_song")

	after, err := svc.GetPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if after.Title != "Easter Sunday" || len(after.Items) != 1 {
		t.Fatalf("failed replace was not rolled back: %+v", after)
	}

	_, err = svc.ReplacePlan(ctx, uuid.New(), ServicePlanInput{Title: "x", ServiceDate: "2026-04-05"})
	requireAPIError(t, err, http.StatusNotFound, "service_plan_not_found")

	if err := svc.DeletePlan(ctx, plan.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	_, err = svc.GetPlan(ctx, plan.ID)
	requireAPIError(t, err, http.StatusNotFound, "service_plan_not_found")
}

func TestMusicService_SongsAreTenantScoped(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewMusicService(db, log, repos.NewSongRepo(db, log), repos.NewServicePlanRepo(db, log), repos.NewMemberRepo(db, log))
	_, ctx := seedTenant(t, db, "grace")
	_, otherCtx := seedTenant(t, db, "hope")

	song, err := svc.CreateSong(ctx, SongInput{Title: "  10,000 Reasons ", DefaultKey: "G"})
	if err != nil {
		t.Fatalf("CreateSong: %v", err)
	}
	if song.Title != "10,000 Reasons" {
		t.Fatalf("title not trimmed: %q", song.Title)
	}
	_, err = svc.GetSong(otherCtx, song.ID)
	requireAPIError(t, err, http.StatusNotFound, "song_not_found")

	songs, err := svc.ListSongs(otherCtx, "")
	if err != nil || len(songs) != 0 {
		t.Fatalf("other tenant sees %d songs (err=%v)", len(songs), err)
	}
}
