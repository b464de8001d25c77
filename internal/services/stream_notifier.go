package services

import (
	"context"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/realtime"
)

const (
	EventStreamStarted = "stream.started"
	EventStreamEnded   = "stream.ended"
	EventStreamUpdated = "stream.updated"
)

type StreamNotifier interface {
	StreamStarted(ctx context.Context, stream *domain.LiveStream)
	StreamEnded(ctx context.Context, stream *domain.LiveStream)
	StreamUpdated(ctx context.Context, stream *domain.LiveStream)
}

type streamNotifier struct {
	emit EventEmitter
}

func NewStreamNotifier(emit EventEmitter) StreamNotifier {
	return &streamNotifier{emit: emit}
}

func (n *streamNotifier) StreamStarted(ctx context.Context, stream *domain.LiveStream) {
	n.send(ctx, EventStreamStarted, stream)
}

func (n *streamNotifier) StreamEnded(ctx context.Context, stream *domain.LiveStream) {
	n.send(ctx, EventStreamEnded, stream)
}

func (n *streamNotifier) StreamUpdated(ctx context.Context, stream *domain.LiveStream) {
	n.send(ctx, EventStreamUpdated, stream)
}

func (n *streamNotifier) send(ctx context.Context, eventType string, stream *domain.LiveStream) {
	if n == nil || n.emit == nil || stream == nil {
		return
	}
	n.emit.Emit(ctx, realtime.Event{
		"type":      eventType,
		"stream":    stream,
		"church_id": stream.ChurchID.String(),
	})
}
