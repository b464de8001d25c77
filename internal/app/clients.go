package app

import (
	"context"
	"fmt"

	"github.com/yungbote/shepherd-backend/internal/platform/ai"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/mail"
	"github.com/yungbote/shepherd-backend/internal/realtime/bus"
)

type Clients struct {
	// EventBus is nil when REDIS_ADDR is unset; events then stay on this
	// instance.
	EventBus  bus.Bus
	Generator ai.Generator
	Mailer    mail.Sender
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var eventBus bus.Bus
	if cfg.Redis.Addr != "" {
		b, err := bus.NewRedisBus(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		eventBus = b
	} else {
		log.Info("REDIS_ADDR not set; events are broadcast on this instance only")
	}

	// AI
	gen, err := ai.New(ctx, log, cfg.AI)
	if err != nil {
		if eventBus != nil {
			_ = eventBus.Close()
		}
		return Clients{}, fmt.Errorf("init ai generator: %w", err)
	}

	// Mail
	mailer := mail.New(log, cfg.Mail)

	return Clients{
		EventBus:  eventBus,
		Generator: gen,
		Mailer:    mailer,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
}
