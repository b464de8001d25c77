package streaming

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type LiveStreamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stream *domain.LiveStream) (*domain.LiveStream, error)
	Get(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID) (*domain.LiveStream, error)
	List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) ([]*domain.LiveStream, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, status string) ([]*domain.LiveStream, error)
	// GetByProviderID is not church scoped: webhooks only know the provider id.
	GetByProviderID(ctx context.Context, tx *gorm.DB, providerStreamID string) (*domain.LiveStream, error)
	// LockByProviderID is GetByProviderID holding a row lock until tx ends.
	// SQLite has no row locks; its single writer serializes instead.
	LockByProviderID(ctx context.Context, tx *gorm.DB, providerStreamID string) (*domain.LiveStream, error)
	Update(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID) error
}

type liveStreamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLiveStreamRepo(db *gorm.DB, baseLog *logger.Logger) LiveStreamRepo {
	return &liveStreamRepo{db: db, log: baseLog.With("repo", "LiveStreamRepo")}
}

func (r *liveStreamRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *liveStreamRepo) Create(ctx context.Context, tx *gorm.DB, stream *domain.LiveStream) (*domain.LiveStream, error) {
	if err := r.conn(tx).WithContext(ctx).Create(stream).Error; err != nil {
		return nil, fmt.Errorf("create live stream: %w", err)
	}
	return stream, nil
}

func (r *liveStreamRepo) Get(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID) (*domain.LiveStream, error) {
	return r.first(ctx, tx, "church_id = ? AND id = ?", churchID, streamID)
}

func (r *liveStreamRepo) GetByProviderID(ctx context.Context, tx *gorm.DB, providerStreamID string) (*domain.LiveStream, error) {
	return r.first(ctx, tx, "provider_stream_id = ?", providerStreamID)
}

func (r *liveStreamRepo) LockByProviderID(ctx context.Context, tx *gorm.DB, providerStreamID string) (*domain.LiveStream, error) {
	var s domain.LiveStream
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider_stream_id = ?", providerStreamID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *liveStreamRepo) first(ctx context.Context, tx *gorm.DB, query string, args ...any) (*domain.LiveStream, error) {
	var s domain.LiveStream
	if err := r.conn(tx).WithContext(ctx).Where(query, args...).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *liveStreamRepo) List(ctx context.Context, tx *gorm.DB, churchID uuid.UUID) ([]*domain.LiveStream, error) {
	var out []*domain.LiveStream
	if err := r.conn(tx).WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *liveStreamRepo) ListByStatus(ctx context.Context, tx *gorm.DB, churchID uuid.UUID, status string) ([]*domain.LiveStream, error) {
	var out []*domain.LiveStream
	if err := r.conn(tx).WithContext(ctx).
		Where("church_id = ? AND status = ?", churchID, status).
		Order("started_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *liveStreamRepo) Update(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID, updates map[string]any) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&domain.LiveStream{}).
		Where("church_id = ? AND id = ?", churchID, streamID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the row outright so its provider_stream_id can be reused.
func (r *liveStreamRepo) Delete(ctx context.Context, tx *gorm.DB, churchID, streamID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Unscoped().
		Where("church_id = ? AND id = ?", churchID, streamID).
		Delete(&domain.LiveStream{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
