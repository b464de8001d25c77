package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/ai"
)

type contentFixture struct {
	svc   ContentService
	repo  repos.GeneratedContentRepo
	songs repos.SongRepo
}

func newTestContentService(t *testing.T, gen ai.Generator) (*contentFixture, *domain.Church, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tmpl, err := ai.LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	f := &contentFixture{
		repo:  repos.NewGeneratedContentRepo(db, log),
		songs: repos.NewSongRepo(db, log),
	}
	f.svc = NewContentService(db, log, repos.NewChurchRepo(db, log), f.songs, f.repo, gen, tmpl)
	church, ctx := seedTenant(t, db, "grace")
	testutil.SeedSong(t, ctx, db, church.ID, "Amazing Grace", "G")
	return f, church, ctx
}

func TestContentService_GenerationFailurePersistsNothing(t *testing.T) {
	failing := ai.GeneratorFunc(func(context.Context, ai.Prompt) (ai.Completion, error) {
		return ai.Completion{}, errors.New("provider unavailable")
	})
	f, church, ctx := newTestContentService(t, failing)

	cases := []struct {
		name string
		run  func() error
	}{
		{"sermon", func() error {
			_, err := f.svc.GenerateSermon(ctx, SermonInput{Topic: "Hope"})
			return err
		}},
		{"email", func() error {
			_, err := f.svc.GenerateEmail(ctx, EmailInput{Purpose: "Picnic invite"})
			return err
		}},
		{"worship_set", func() error {
			_, err := f.svc.GenerateWorshipSet(ctx, WorshipSetInput{Theme: "Grace"})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			requireAPIError(t, err, http.StatusBadGateway, "generation_failed")
			if err.Error() != "Generation Failed" {
				t.Fatalf("message: got %q", err.Error())
			}
			n, err := f.repo.Count(context.Background(), nil, church.ID)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != 0 {
				t.Fatalf("expected no generated content, got %d rows", n)
			}
		})
	}
}

func TestContentService_NotConfiguredIsGenerationFailure(t *testing.T) {
	gen, err := ai.New(context.Background(), testutil.Logger(t), ai.Config{Provider: ai.ProviderOpenAI})
	if err != nil {
		t.Fatalf("ai.New: %v", err)
	}
	f, _, ctx := newTestContentService(t, gen)
	_, err = f.svc.GenerateSermon(ctx, SermonInput{Topic: "Hope"})
	requireAPIError(t, err, http.StatusBadGateway, "generation_failed")
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Fatalf("expected cause ErrNotConfigured, got %v", err)
	}
}

func TestContentService_GenerateWorshipSetPersists(t *testing.T) {
	var seen ai.Prompt
	gen := ai.GeneratorFunc(func(_ context.Context, p ai.Prompt) (ai.Completion, error) {
		seen = p
		return ai.Completion{Text: "  1. Amazing Grace (G)\n", Model: "test-model"}, nil
	})
	f, church, ctx := newTestContentService(t, gen)

	row, err := f.svc.GenerateWorshipSet(ctx, WorshipSetInput{Theme: "Grace", ServiceDate: "2026-03-01", SongCount: 3})
	if err != nil {
		t.Fatalf("GenerateWorshipSet: %v", err)
	}
	if !strings.Contains(seen.User, "Amazing Grace in G") {
		t.Fatalf("prompt missing song library:\n%s", seen.User)
	}
	if !strings.Contains(seen.User, "Church: grace") {
		t.Fatalf("prompt missing church name:\n%s", seen.User)
	}
	if row.Kind != domain.ContentKindWorshipSet || row.Title != "Worship set: Grace" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Body != "1. Amazing Grace (G)" || row.Model != "test-model" {
		t.Fatalf("unexpected body/model: %q %q", row.Body, row.Model)
	}
	if row.CreatedBy == nil {
		t.Fatalf("expected created_by to be set")
	}
	var params map[string]any
	if err := json.Unmarshal(row.Params, &params); err != nil {
		t.Fatalf("params: %v", err)
	}
	if params["theme"] != "Grace" || params["song_count"] != float64(3) {
		t.Fatalf("unexpected params: %v", params)
	}

	n, _ := f.repo.Count(context.Background(), nil, church.ID)
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
	list, err := f.svc.List(ctx, domain.ContentKindWorshipSet)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %d rows, err=%v", len(list), err)
	}
	if err := f.svc.Delete(ctx, row.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = f.svc.Get(ctx, row.ID)
	requireAPIError(t, err, http.StatusNotFound, "content_not_found")
}

func TestContentService_EmptyCompletionFails(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, ai.Prompt) (ai.Completion, error) {
		return ai.Completion{Text: "   "}, nil
	})
	f, church, ctx := newTestContentService(t, gen)
	_, err := f.svc.GenerateEmail(ctx, EmailInput{Purpose: "Welcome"})
	requireAPIError(t, err, http.StatusBadGateway, "generation_failed")
	if n, _ := f.repo.Count(context.Background(), nil, church.ID); n != 0 {
		t.Fatalf("expected no rows, got %d", n)
	}
}

func TestContentService_Validation(t *testing.T) {
	called := false
	gen := ai.GeneratorFunc(func(context.Context, ai.Prompt) (ai.Completion, error) {
		called = true
		return ai.Completion{Text: "x"}, nil
	})
	f, _, ctx := newTestContentService(t, gen)

	_, err := f.svc.GenerateSermon(ctx, SermonInput{})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")
	_, err = f.svc.GenerateWorshipSet(ctx, WorshipSetInput{Theme: "x", ServiceDate: "March 1"})
	requireAPIError(t, err, http.StatusBadRequest, "invalid_service_date")
	_, err = f.svc.List(ctx, "poem")
	requireAPIError(t, err, http.StatusBadRequest, "invalid_kind")
	if called {
		t.Fatalf("generator called for invalid input")
	}
}
