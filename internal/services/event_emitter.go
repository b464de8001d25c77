package services

import (
	"context"

	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime"
	"github.com/yungbote/shepherd-backend/internal/realtime/bus"
)

type EventEmitter interface {
	Emit(ctx context.Context, ev realtime.Event)
}

// HubEmitter broadcasts straight into the local registry.
type HubEmitter struct{ Registry *realtime.Registry }

func (e *HubEmitter) Emit(ctx context.Context, ev realtime.Event) {
	e.Registry.Broadcast(ev)
}

// RedisEmitter publishes to the bus; every instance's forwarder then
// broadcasts locally. If publishing fails the event is broadcast on this
// instance only.
type RedisEmitter struct {
	Bus     bus.Bus
	Local   *realtime.Registry
	Log     *logger.Logger
	Metrics *observability.Metrics
}

func (e *RedisEmitter) Emit(ctx context.Context, ev realtime.Event) {
	if err := e.Bus.Publish(ctx, ev); err != nil {
		e.Metrics.IncBusPublishError(ev.Type())
		if e.Log != nil {
			e.Log.Warn("event publish failed; broadcasting locally", "event_type", ev.Type(), "error", err)
		}
		if e.Local != nil {
			e.Local.Broadcast(ev)
		}
	}
}

// InstrumentedEmitter counts emitted events by type before handing them on.
type InstrumentedEmitter struct {
	Next    EventEmitter
	Metrics *observability.Metrics
}

func (e *InstrumentedEmitter) Emit(ctx context.Context, ev realtime.Event) {
	e.Metrics.IncEventEmitted(ev.Type())
	e.Next.Emit(ctx, ev)
}
