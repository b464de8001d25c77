package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

type SongInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Artist     string `json:"artist" validate:"max=200"`
	DefaultKey string `json:"default_key" validate:"max=8"`
	TempoBPM   int    `json:"tempo_bpm" validate:"min=0,max=400"`
	CCLINumber string `json:"ccli_number" validate:"max=20"`
}

type SongPatch struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Artist     *string `json:"artist" validate:"omitempty,max=200"`
	DefaultKey *string `json:"default_key" validate:"omitempty,max=8"`
	TempoBPM   *int    `json:"tempo_bpm" validate:"omitempty,min=0,max=400"`
	CCLINumber *string `json:"ccli_number" validate:"omitempty,max=20"`
}

type PlanItemInput struct {
	Position       int        `json:"position" validate:"min=0"`
	SongID         *uuid.UUID `json:"song_id"`
	SongKey        string     `json:"song_key" validate:"max=8"`
	LeaderMemberID *uuid.UUID `json:"leader_member_id"`
	Notes          string     `json:"notes"`
}

type ServicePlanInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	ServiceDate string          `json:"service_date" validate:"required"`
	Notes       string          `json:"notes"`
	Items       []PlanItemInput `json:"items" validate:"dive"`
}

type MusicService interface {
	ListSongs(ctx context.Context, query string) ([]*domain.Song, error)
	CreateSong(ctx context.Context, in SongInput) (*domain.Song, error)
	GetSong(ctx context.Context, songID uuid.UUID) (*domain.Song, error)
	UpdateSong(ctx context.Context, songID uuid.UUID, patch SongPatch) (*domain.Song, error)
	DeleteSong(ctx context.Context, songID uuid.UUID) error

	ListPlans(ctx context.Context, from, to string) ([]*domain.ServicePlan, error)
	CreatePlan(ctx context.Context, in ServicePlanInput) (*domain.ServicePlan, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*domain.ServicePlan, error)
	ReplacePlan(ctx context.Context, planID uuid.UUID, in ServicePlanInput) (*domain.ServicePlan, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
}

type musicService struct {
	db         *gorm.DB
	log        *logger.Logger
	songRepo   repos.SongRepo
	planRepo   repos.ServicePlanRepo
	memberRepo repos.MemberRepo
}

func NewMusicService(db *gorm.DB, log *logger.Logger, songRepo repos.SongRepo, planRepo repos.ServicePlanRepo, memberRepo repos.MemberRepo) MusicService {
	return &musicService{
		db:         db,
		log:        log.With("service", "MusicService"),
		songRepo:   songRepo,
		planRepo:   planRepo,
		memberRepo: memberRepo,
	}
}

func (ms *musicService) ListSongs(ctx context.Context, query string) ([]*domain.Song, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return ms.songRepo.List(ctx, nil, churchID, query)
}

func (ms *musicService) CreateSong(ctx context.Context, in SongInput) (*domain.Song, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return ms.songRepo.Create(ctx, nil, &domain.Song{
		ChurchID:   churchID,
		Title:      in.Title,
		Artist:     strings.TrimSpace(in.Artist),
		DefaultKey: strings.TrimSpace(in.DefaultKey),
		TempoBPM:   in.TempoBPM,
		CCLINumber: strings.TrimSpace(in.CCLINumber),
	})
}

func (ms *musicService) GetSong(ctx context.Context, songID uuid.UUID) (*domain.Song, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	s, err := ms.songRepo.Get(ctx, nil, churchID, songID)
	if err != nil {
		return nil, notFound(err, "song_not_found", "get song")
	}
	return s, nil
}

func (ms *musicService) UpdateSong(ctx context.Context, songID uuid.UUID, patch SongPatch) (*domain.Song, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIfPresent(updates, "title", patch.Title)
	setIfPresent(updates, "artist", patch.Artist)
	setIfPresent(updates, "default_key", patch.DefaultKey)
	setIfPresent(updates, "tempo_bpm", patch.TempoBPM)
	setIfPresent(updates, "ccli_number", patch.CCLINumber)
	if len(updates) > 0 {
		if err := ms.songRepo.Update(ctx, nil, churchID, songID, updates); err != nil {
			return nil, notFound(err, "song_not_found", "update song")
		}
	}
	return ms.GetSong(ctx, songID)
}

func (ms *musicService) DeleteSong(ctx context.Context, songID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := ms.songRepo.Delete(ctx, nil, churchID, songID); err != nil {
		return notFound(err, "song_not_found", "delete song")
	}
	return nil
}

func (ms *musicService) ListPlans(ctx context.Context, from, to string) ([]*domain.ServicePlan, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	fromDate, err := ParseOptionalDate("from", from)
	if err != nil {
		return nil, err
	}
	toDate, err := ParseOptionalDate("to", to)
	if err != nil {
		return nil, err
	}
	return ms.planRepo.List(ctx, nil, churchID, fromDate, toDate)
}

// buildItems validates plan items against the church's songs and members and
// fills in positions left at zero.
func (ms *musicService) buildItems(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, in []PlanItemInput) ([]domain.ServicePlanItem, error) {
	var songIDs, memberIDs []uuid.UUID
	seenSong := map[uuid.UUID]bool{}
	seenMember := map[uuid.UUID]bool{}
	items := make([]domain.ServicePlanItem, 0, len(in))
	for i, it := range in {
		pos := it.Position
		if pos == 0 {
			pos = i + 1
		}
		if it.SongID != nil && !seenSong[*it.SongID] {
			seenSong[*it.SongID] = true
			songIDs = append(songIDs, *it.SongID)
		}
		if it.LeaderMemberID != nil && !seenMember[*it.LeaderMemberID] {
			seenMember[*it.LeaderMemberID] = true
			memberIDs = append(memberIDs, *it.LeaderMemberID)
		}
		items = append(items, domain.ServicePlanItem{
			Position:       pos,
			SongID:         it.SongID,
			SongKey:        strings.TrimSpace(it.SongKey),
			LeaderMemberID: it.LeaderMemberID,
			Notes:          it.Notes,
		})
	}
	if len(songIDs) > 0 {
		n, err := ms.songRepo.CountExisting(ctx, tx, churchID, songIDs)
		if err != nil {
			return nil, err
		}
		if n != int64(len(songIDs)) {
			return nil, apierr.BadRequest("unknown_song", "items reference songs that do not belong to this church")
		}
	}
	if len(memberIDs) > 0 {
		n, err := ms.memberRepo.CountExisting(ctx, tx, churchID, memberIDs)
		if err != nil {
			return nil, err
		}
		if n != int64(len(memberIDs)) {
			return nil, apierr.BadRequest("unknown_member", "items reference members that do not belong to this church")
		}
	}
	return items, nil
}

func (ms *musicService) CreatePlan(ctx context.Context, in ServicePlanInput) (*domain.ServicePlan, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	date, err := ParseDate("service_date", in.ServiceDate)
	if err != nil {
		return nil, err
	}

	var planID uuid.UUID
	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := ms.buildItems(ctx, tx, churchID, in.Items)
		if err != nil {
			return err
		}
		plan, err := ms.planRepo.Create(ctx, tx, &domain.ServicePlan{
			ChurchID:    churchID,
			Title:       in.Title,
			ServiceDate: date,
			Notes:       in.Notes,
		})
		if err != nil {
			return err
		}
		planID = plan.ID
		return ms.planRepo.ReplaceItems(ctx, tx, plan.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return ms.GetPlan(ctx, planID)
}

func (ms *musicService) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.ServicePlan, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ms.planRepo.Get(ctx, nil, churchID, planID)
	if err != nil {
		return nil, notFound(err, "service_plan_not_found", "get service plan")
	}
	return p, nil
}

// ReplacePlan overwrites the plan's fields and its full item list in one
// transaction.
func (ms *musicService) ReplacePlan(ctx context.Context, planID uuid.UUID, in ServicePlanInput) (*domain.ServicePlan, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	date, err := ParseDate("service_date", in.ServiceDate)
	if err != nil {
		return nil, err
	}

	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ms.planRepo.Update(ctx, tx, churchID, planID, map[string]any{
			"title":        in.Title,
			"service_date": date,
			"notes":        in.Notes,
		}); err != nil {
			return notFound(err, "service_plan_not_found", "update service plan")
		}
		items, err := ms.buildItems(ctx, tx, churchID, in.Items)
		if err != nil {
			return err
		}
		return ms.planRepo.ReplaceItems(ctx, tx, planID, items)
	})
	if err != nil {
		return nil, err
	}
	return ms.GetPlan(ctx, planID)
}

func (ms *musicService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := ms.planRepo.Delete(ctx, nil, churchID, planID); err != nil {
		return notFound(err, "service_plan_not_found", "delete service plan")
	}
	return nil
}
