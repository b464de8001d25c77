package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/ai"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

var errEmptyCompletion = errors.New("empty completion")

const (
	defaultSermonMinutes = 25
	defaultSongCount     = 5
	maxLibrarySongs      = 200
)

type SermonInput struct {
	Topic         string `json:"topic" validate:"required,max=300"`
	Scripture     string `json:"scripture" validate:"max=300"`
	Tone          string `json:"tone" validate:"max=100"`
	LengthMinutes int    `json:"length_minutes" validate:"omitempty,min=5,max=90"`
}

type EmailInput struct {
	Purpose   string   `json:"purpose" validate:"required,max=300"`
	Audience  string   `json:"audience" validate:"max=200"`
	Tone      string   `json:"tone" validate:"max=100"`
	KeyPoints []string `json:"key_points" validate:"max=20"`
}

type WorshipSetInput struct {
	Theme       string `json:"theme" validate:"required,max=300"`
	ServiceDate string `json:"service_date"`
	SongCount   int    `json:"song_count" validate:"omitempty,min=1,max=15"`
}

type ContentService interface {
	GenerateSermon(ctx context.Context, in SermonInput) (*domain.GeneratedContent, error)
	GenerateEmail(ctx context.Context, in EmailInput) (*domain.GeneratedContent, error)
	GenerateWorshipSet(ctx context.Context, in WorshipSetInput) (*domain.GeneratedContent, error)
	List(ctx context.Context, kind string) ([]*domain.GeneratedContent, error)
	Get(ctx context.Context, contentID uuid.UUID) (*domain.GeneratedContent, error)
	Delete(ctx context.Context, contentID uuid.UUID) error
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	churchRepo  repos.ChurchRepo
	songRepo    repos.SongRepo
	contentRepo repos.GeneratedContentRepo
	generator   ai.Generator
	templates   *ai.Templates
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	churchRepo repos.ChurchRepo,
	songRepo repos.SongRepo,
	contentRepo repos.GeneratedContentRepo,
	generator ai.Generator,
	templates *ai.Templates,
) ContentService {
	return &contentService{
		db:          db,
		log:         log.With("service", "ContentService"),
		churchRepo:  churchRepo,
		songRepo:    songRepo,
		contentRepo: contentRepo,
		generator:   generator,
		templates:   templates,
	}
}

// generationFailed is what callers see for any provider error. The cause is
// kept for logging only.
func generationFailed(err error) error {
	return &apierr.Error{
		Status:  http.StatusBadGateway,
		Code:    "generation_failed",
		Message: "Generation Failed",
		Err:     err,
	}
}

func (cs *contentService) churchName(ctx context.Context, churchID uuid.UUID) (string, error) {
	church, err := cs.churchRepo.GetByID(ctx, nil, churchID)
	if err != nil {
		return "", notFound(err, "church_not_found", "load church")
	}
	return church.Name, nil
}

func (cs *contentService) GenerateSermon(ctx context.Context, in SermonInput) (*domain.GeneratedContent, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.LengthMinutes == 0 {
		in.LengthMinutes = defaultSermonMinutes
	}
	name, err := cs.churchName(ctx, churchID)
	if err != nil {
		return nil, err
	}
	data := struct {
		SermonInput
		ChurchName string
	}{in, name}
	return cs.generate(ctx, churchID, domain.ContentKindSermon, data, in)
}

func (cs *contentService) GenerateEmail(ctx context.Context, in EmailInput) (*domain.GeneratedContent, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	points := in.KeyPoints[:0]
	for _, p := range in.KeyPoints {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	in.KeyPoints = points
	name, err := cs.churchName(ctx, churchID)
	if err != nil {
		return nil, err
	}
	data := struct {
		EmailInput
		ChurchName string
	}{in, name}
	return cs.generate(ctx, churchID, domain.ContentKindEmail, data, in)
}

type librarySong struct {
	Title  string
	Artist string
	Key    string
}

func (cs *contentService) GenerateWorshipSet(ctx context.Context, in WorshipSetInput) (*domain.GeneratedContent, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.ServiceDate != "" {
		if _, err := ParseDate("service_date", in.ServiceDate); err != nil {
			return nil, err
		}
	}
	if in.SongCount == 0 {
		in.SongCount = defaultSongCount
	}
	name, err := cs.churchName(ctx, churchID)
	if err != nil {
		return nil, err
	}
	songs, err := cs.songRepo.List(ctx, nil, churchID, "")
	if err != nil {
		return nil, fmt.Errorf("load song library: %w", err)
	}
	if len(songs) > maxLibrarySongs {
		songs = songs[:maxLibrarySongs]
	}
	library := make([]librarySong, 0, len(songs))
	for _, s := range songs {
		library = append(library, librarySong{Title: s.Title, Artist: s.Artist, Key: s.DefaultKey})
	}
	data := struct {
		WorshipSetInput
		ChurchName string
		Songs      []librarySong
	}{in, name, library}
	return cs.generate(ctx, churchID, domain.ContentKindWorshipSet, data, in)
}

// generate renders the kind's prompt, calls the provider and stores the
// result. Nothing is written unless the provider succeeds.
func (cs *contentService) generate(ctx context.Context, churchID uuid.UUID, kind string, data any, params any) (*domain.GeneratedContent, error) {
	prompt, title, err := cs.templates.Render(kind, data)
	if err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", kind, err)
	}
	completion, err := cs.generator.Generate(ctx, prompt)
	if err != nil {
		cs.log.Warn("content generation failed", "kind", kind, "church_id", churchID, "error", err)
		return nil, generationFailed(err)
	}
	body := strings.TrimSpace(completion.Text)
	if body == "" {
		cs.log.Warn("content generation returned empty text", "kind", kind, "church_id", churchID)
		return nil, generationFailed(errEmptyCompletion)
	}
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode %s params: %w", kind, err)
	}
	row, err := cs.contentRepo.Create(ctx, nil, &domain.GeneratedContent{
		ChurchID:  churchID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		Params:    datatypes.JSON(rawParams),
		Model:     completion.Model,
		CreatedBy: userFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("content generated", "kind", kind, "content_id", row.ID, "model", row.Model)
	return row, nil
}

func (cs *contentService) List(ctx context.Context, kind string) ([]*domain.GeneratedContent, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	kind = strings.TrimSpace(kind)
	switch kind {
	case "", domain.ContentKindSermon, domain.ContentKindEmail, domain.ContentKindWorshipSet:
	default:
		return nil, apierr.BadRequest("invalid_kind", "kind must be sermon, email or worship_set")
	}
	return cs.contentRepo.List(ctx, nil, churchID, kind)
}

func (cs *contentService) Get(ctx context.Context, contentID uuid.UUID) (*domain.GeneratedContent, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	row, err := cs.contentRepo.Get(ctx, nil, churchID, contentID)
	if err != nil {
		return nil, notFound(err, "content_not_found", "get content")
	}
	return row, nil
}

func (cs *contentService) Delete(ctx context.Context, contentID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := cs.contentRepo.Delete(ctx, nil, churchID, contentID); err != nil {
		return notFound(err, "content_not_found", "delete content")
	}
	return nil
}
