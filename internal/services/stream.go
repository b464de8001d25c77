package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

const (
	WebhookStreamActive       = "video.live_stream.active"
	WebhookStreamIdle         = "video.live_stream.idle"
	WebhookStreamDisconnected = "video.live_stream.disconnected"

	webhookTolerance = 5 * time.Minute
)

type LiveStreamInput struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	ProviderStreamID string `json:"provider_stream_id" validate:"required,max=200"`
	PlaybackID       string `json:"playback_id" validate:"max=200"`
}

type LiveStreamPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	PlaybackID  *string `json:"playback_id" validate:"omitempty,max=200"`
}

type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		PlaybackIDs []struct {
			ID string `json:"id"`
		} `json:"playback_ids"`
	} `json:"data"`
}

type WebhookResult struct {
	Ignored bool               `json:"ignored"`
	Event   string             `json:"event,omitempty"`
	Stream  *domain.LiveStream `json:"stream,omitempty"`
}

type StreamService interface {
	List(ctx context.Context) ([]*domain.LiveStream, error)
	Create(ctx context.Context, in LiveStreamInput) (*domain.LiveStream, error)
	Get(ctx context.Context, streamID uuid.UUID) (*domain.LiveStream, error)
	Update(ctx context.Context, streamID uuid.UUID, patch LiveStreamPatch) (*domain.LiveStream, error)
	Delete(ctx context.Context, streamID uuid.UUID) error
	LiveStatus(ctx context.Context, churchID uuid.UUID) ([]*domain.LiveStream, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error)
}

type streamService struct {
	db            *gorm.DB
	log           *logger.Logger
	streamRepo    repos.LiveStreamRepo
	notifier      StreamNotifier
	webhookSecret string
	now           func() time.Time
}

func NewStreamService(db *gorm.DB, log *logger.Logger, streamRepo repos.LiveStreamRepo, notifier StreamNotifier, webhookSecret string) StreamService {
	return &streamService{
		db:            db,
		log:           log.With("service", "StreamService"),
		streamRepo:    streamRepo,
		notifier:      notifier,
		webhookSecret: strings.TrimSpace(webhookSecret),
		now:           time.Now,
	}
}

func (ss *streamService) List(ctx context.Context) ([]*domain.LiveStream, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return ss.streamRepo.List(ctx, nil, churchID)
}

func (ss *streamService) Create(ctx context.Context, in LiveStreamInput) (*domain.LiveStream, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.ProviderStreamID = strings.TrimSpace(in.ProviderStreamID)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := ss.streamRepo.GetByProviderID(ctx, nil, in.ProviderStreamID); err == nil {
		return nil, apierr.Conflict("provider_stream_exists", "a stream with this provider_stream_id already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check provider stream id: %w", err)
	}
	return ss.streamRepo.Create(ctx, nil, &domain.LiveStream{
		ChurchID:         churchID,
		Title:            in.Title,
		Description:      in.Description,
		ProviderStreamID: in.ProviderStreamID,
		PlaybackID:       strings.TrimSpace(in.PlaybackID),
		Status:           domain.StreamStatusIdle,
	})
}

func (ss *streamService) Get(ctx context.Context, streamID uuid.UUID) (*domain.LiveStream, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	s, err := ss.streamRepo.Get(ctx, nil, churchID, streamID)
	if err != nil {
		return nil, notFound(err, "stream_not_found", "get stream")
	}
	return s, nil
}

func (ss *streamService) Update(ctx context.Context, streamID uuid.UUID, patch LiveStreamPatch) (*domain.LiveStream, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIfPresent(updates, "title", patch.Title)
	setIfPresent(updates, "description", patch.Description)
	setIfPresent(updates, "playback_id", patch.PlaybackID)
	if len(updates) == 0 {
		return ss.Get(ctx, streamID)
	}
	if err := ss.streamRepo.Update(ctx, nil, churchID, streamID, updates); err != nil {
		return nil, notFound(err, "stream_not_found", "update stream")
	}
	s, err := ss.Get(ctx, streamID)
	if err != nil {
		return nil, err
	}
	ss.notifier.StreamUpdated(ctx, s)
	return s, nil
}

func (ss *streamService) Delete(ctx context.Context, streamID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := ss.streamRepo.Delete(ctx, nil, churchID, streamID); err != nil {
		return notFound(err, "stream_not_found", "delete stream")
	}
	return nil
}

// LiveStatus lists a church's streams that are currently live. It is public
// and takes the church explicitly.
func (ss *streamService) LiveStatus(ctx context.Context, churchID uuid.UUID) ([]*domain.LiveStream, error) {
	if churchID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_church_id", "church_id is required")
	}
	return ss.streamRepo.ListByStatus(ctx, nil, churchID, domain.StreamStatusLive)
}

// HandleWebhook applies a provider live-stream webhook to the matching stream
// and emits the corresponding event. Unknown event types and unknown streams
// are acknowledged as ignored.
func (ss *streamService) HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if ss.webhookSecret != "" {
		if err := VerifyWebhookSignature(ss.webhookSecret, signature, body, ss.now()); err != nil {
			ss.log.Warn("webhook signature rejected", "error", err)
			return nil, apierr.Unauthorized("invalid webhook signature")
		}
	}

	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, apierr.BadRequest("invalid_payload", "webhook body is not valid JSON")
	}

	now := ss.now().UTC()
	updates := map[string]any{}
	switch ev.Type {
	case WebhookStreamActive:
		updates["status"] = domain.StreamStatusLive
		updates["started_at"] = now
		updates["ended_at"] = nil
	case WebhookStreamIdle:
		updates["status"] = domain.StreamStatusIdle
		updates["ended_at"] = now
	case WebhookStreamDisconnected:
		updates["status"] = domain.StreamStatusDisconnected
	default:
		ss.log.Debug("webhook type ignored", "type", ev.Type)
		return &WebhookResult{Ignored: true}, nil
	}
	if len(ev.Data.PlaybackIDs) > 0 && ev.Data.PlaybackIDs[0].ID != "" {
		updates["playback_id"] = ev.Data.PlaybackIDs[0].ID
	}

	providerID := strings.TrimSpace(ev.Data.ID)
	if providerID == "" {
		return nil, apierr.BadRequest("invalid_payload", "data.id is required")
	}
	var stream *domain.LiveStream
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := ss.streamRepo.LockByProviderID(ctx, tx, providerID)
		if err != nil {
			return err
		}
		if err := ss.streamRepo.Update(ctx, tx, current.ChurchID, current.ID, updates); err != nil {
			return fmt.Errorf("update stream status: %w", err)
		}
		stream, err = ss.streamRepo.Get(ctx, tx, current.ChurchID, current.ID)
		if err != nil {
			return fmt.Errorf("reload stream: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ss.log.Info("webhook for unknown stream ignored", "type", ev.Type, "provider_stream_id", providerID)
			return &WebhookResult{Ignored: true}, nil
		}
		return nil, fmt.Errorf("apply webhook: %w", err)
	}

	// Events go out after commit so subscribers that reload the stream see
	// the new status.
	var emitted string
	switch ev.Type {
	case WebhookStreamActive:
		ss.notifier.StreamStarted(ctx, stream)
		emitted = EventStreamStarted
	case WebhookStreamIdle:
		ss.notifier.StreamEnded(ctx, stream)
		emitted = EventStreamEnded
	default:
		ss.notifier.StreamUpdated(ctx, stream)
		emitted = EventStreamUpdated
	}
	ss.log.Info("stream status changed", "stream_id", stream.ID, "church_id", stream.ChurchID, "status", stream.Status, "event", emitted)
	return &WebhookResult{Event: emitted, Stream: stream}, nil
}

// VerifyWebhookSignature checks a "t=<unix>,v1=<hex>" header: v1 must be the
// HMAC-SHA256 of "<t>.<body>" under secret, and t must be within five
// minutes of now.
func VerifyWebhookSignature(secret, header string, body []byte, now time.Time) error {
	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return errors.New("malformed signature header")
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("bad timestamp: %w", err)
	}
	age := now.Sub(time.Unix(unix, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return errors.New("timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	want := mac.Sum(nil)
	for _, s := range sigs {
		got, err := hex.DecodeString(s)
		if err != nil {
			continue
		}
		if hmac.Equal(got, want) {
			return nil
		}
	}
	return errors.New("signature mismatch")
}

// SignWebhook builds a signature header for body at t.
func SignWebhook(secret string, body []byte, t time.Time) string {
	ts := strconv.FormatInt(t.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "."))
	mac.Write(body)
	return "t=" + ts + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}
