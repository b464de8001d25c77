package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
)

func SeedChurch(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Church {
	tb.Helper()
	c := &domain.Church{ID: uuid.New(), Name: name, Slug: name + "-" + uuid.NewString()[:8], Timezone: "UTC"}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed church: %v", err)
	}
	return c
}

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, churchID uuid.UUID, first, last string) *domain.Member {
	tb.Helper()
	m := &domain.Member{
		ID:        uuid.New(),
		ChurchID:  churchID,
		FirstName: first,
		LastName:  last,
		Email:     first + "@example.com",
		Status:    domain.MemberStatusActive,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedSong(tb testing.TB, ctx context.Context, tx *gorm.DB, churchID uuid.UUID, title, key string) *domain.Song {
	tb.Helper()
	s := &domain.Song{ID: uuid.New(), ChurchID: churchID, Title: title, DefaultKey: key}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed song: %v", err)
	}
	return s
}

func SeedLiveStream(tb testing.TB, ctx context.Context, tx *gorm.DB, churchID uuid.UUID, providerID string) *domain.LiveStream {
	tb.Helper()
	s := &domain.LiveStream{
		ID:               uuid.New(),
		ChurchID:         churchID,
		Title:            "Sunday Service",
		ProviderStreamID: providerID,
		Status:           domain.StreamStatusIdle,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed live stream: %v", err)
	}
	return s
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func PtrTime(v time.Time) *time.Time { return &v }
