package app

import (
	"gorm.io/gorm"

	httpserver "github.com/yungbote/shepherd-backend/internal/http"
	httpH "github.com/yungbote/shepherd-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shepherd-backend/internal/http/middleware"
	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Realtime   *httpH.RealtimeHandler
	Stream     *httpH.StreamHandler
	Member     *httpH.MemberHandler
	Attendance *httpH.AttendanceHandler
	Group      *httpH.GroupHandler
	Music      *httpH.MusicHandler
	Expense    *httpH.ExpenseHandler
	Content    *httpH.ContentHandler
	Email      *httpH.EmailHandler
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, s Services, registry *realtime.Registry, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth:   httpH.NewAuthHandler(s.Auth),
		Realtime: httpH.NewRealtimeHandler(log, registry, s.Stream, metrics, httpH.RealtimeOptions{
			BufferSize: cfg.SSEBufferSize,
			Heartbeat:  cfg.SSEHeartbeat,
		}),
		Stream:     httpH.NewStreamHandler(s.Stream),
		Member:     httpH.NewMemberHandler(s.Member),
		Attendance: httpH.NewAttendanceHandler(s.Attendance),
		Group:      httpH.NewGroupHandler(s.Group),
		Music:      httpH.NewMusicHandler(s.Music),
		Expense:    httpH.NewExpenseHandler(s.Expense),
		Content:    httpH.NewContentHandler(s.Content),
		Email:      httpH.NewEmailHandler(s.Email),
	}
}

func routerConfig(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) httpserver.RouterConfig {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = cfg.Otel.ServiceName
	}
	return httpserver.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		TracingService:    tracing,
		AuthMiddleware:    mw.Auth,
		HealthHandler:     h.Health,
		AuthHandler:       h.Auth,
		RealtimeHandler:   h.Realtime,
		StreamHandler:     h.Stream,
		MemberHandler:     h.Member,
		AttendanceHandler: h.Attendance,
		GroupHandler:      h.Group,
		MusicHandler:      h.Music,
		ExpenseHandler:    h.Expense,
		ContentHandler:    h.Content,
		EmailHandler:      h.Email,
	}
}
