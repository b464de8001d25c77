package music

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type SongRepo interface {
	Create(ctx context.Context, tx *gorm.DB, song *domain.Song) (*domain.Song, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID) (*domain.Song, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, query string) ([]*domain.Song, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID) error
	CountExisting(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, songIDs []uuid.UUID) (int64, error)
}

type songRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSongRepo(db *gorm.DB, baseLog *logger.Logger) SongRepo {
	return &songRepo{db: db, log: baseLog.With("repo", "SongRepo")}
}

func (r *songRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *songRepo) Create(ctx context.Context, tx *gorm.DB, song *domain.Song) (*domain.Song, error) {
	if err := r.conn(tx).WithContext(ctx).Create(song).Error; err != nil {
		return nil, fmt.Errorf("create song: %w", err)
	}
	return song, nil
}

func (r *songRepo) Get(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID) (*domain.Song, error) {
	var s domain.Song
	err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, songID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *songRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, query string) ([]*domain.Song, error) {
	q := r.conn(tx).WithContext(ctx).Where("church_id = ?", churchID)
	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(artist) LIKE ?", like, like)
	}
	var out []*domain.Song
	if err := q.Order("title ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *songRepo) Update(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.Song{}).
		Where("church_id = ? AND id = ?", churchID, songID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *songRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, songID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, songID).
		Delete(&domain.Song{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *songRepo) CountExisting(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, songIDs []uuid.UUID) (int64, error) {
	if len(songIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Song{}).
		Where("church_id = ? AND id IN ?", churchID, songIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
