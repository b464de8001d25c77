package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/ai"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type Services struct {
	Events     services.EventEmitter
	Auth       services.AuthService
	Stream     services.StreamService
	Member     services.MemberService
	Attendance services.AttendanceService
	Group      services.GroupService
	Music      services.MusicService
	Expense    services.ExpenseService
	Content    services.ContentService
	Email      services.EmailDeliveryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients, registry *realtime.Registry, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	var emitter services.EventEmitter = &services.HubEmitter{Registry: registry}
	if c.EventBus != nil {
		emitter = &services.RedisEmitter{Bus: c.EventBus, Local: registry, Log: log, Metrics: metrics}
	}
	emitter = &services.InstrumentedEmitter{Next: emitter, Metrics: metrics}

	templates, err := ai.LoadTemplates()
	if err != nil {
		return Services{}, fmt.Errorf("load prompt templates: %w", err)
	}
	generator := ai.Instrument(c.Generator, generatorModel(cfg.AI), metrics)

	if cfg.MuxWebhookSecret == "" {
		log.Warn("MUX_WEBHOOK_SECRET not set; webhook signatures are not verified")
	}

	return Services{
		Events:     emitter,
		Auth:       services.NewAuthService(db, log, r.Church, r.StaffUser, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Stream:     services.NewStreamService(db, log, r.LiveStream, services.NewStreamNotifier(emitter), cfg.MuxWebhookSecret),
		Member:     services.NewMemberService(db, log, r.Member),
		Attendance: services.NewAttendanceService(db, log, r.Member, r.Attendance),
		Group:      services.NewGroupService(db, log, r.Group, r.Member),
		Music:      services.NewMusicService(db, log, r.Song, r.ServicePlan, r.Member),
		Expense:    services.NewExpenseService(db, log, r.Expense),
		Content:    services.NewContentService(db, log, r.Church, r.Song, r.GeneratedContent, generator, templates),
		Email:      services.NewEmailDeliveryService(db, log, r.Church, r.Group, r.GeneratedContent, c.Mailer),
	}, nil
}

// generatorModel is the metrics label for the configured provider.
func generatorModel(cfg ai.Config) string {
	switch cfg.Provider {
	case ai.ProviderGemini:
		if cfg.GeminiModel != "" {
			return cfg.GeminiModel
		}
		return ai.ProviderGemini
	default:
		if cfg.OpenAIModel != "" {
			return cfg.OpenAIModel
		}
		return ai.ProviderOpenAI
	}
}
