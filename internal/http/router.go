package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/shepherd-backend/internal/domain"
	httpH "github.com/yungbote/shepherd-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shepherd-backend/internal/http/middleware"
	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// TracingService names the otelgin server spans. Empty disables them.
	TracingService string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	RealtimeHandler   *httpH.RealtimeHandler
	StreamHandler     *httpH.StreamHandler
	MemberHandler     *httpH.MemberHandler
	AttendanceHandler *httpH.AttendanceHandler
	GroupHandler      *httpH.GroupHandler
	MusicHandler      *httpH.MusicHandler
	ExpenseHandler    *httpH.ExpenseHandler
	ContentHandler    *httpH.ContentHandler
	EmailHandler      *httpH.EmailHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// Streaming (public): event feed, provider webhook, live status
		if cfg.RealtimeHandler != nil {
			api.GET("/streaming/events", cfg.RealtimeHandler.Events)
			api.POST("/streaming/webhook", cfg.RealtimeHandler.Webhook)
			api.GET("/streaming/status", cfg.RealtimeHandler.Status)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		// Streams
		if cfg.StreamHandler != nil {
			protected.GET("/streams", cfg.StreamHandler.List)
			protected.POST("/streams", cfg.StreamHandler.Create)
			protected.GET("/streams/:id", cfg.StreamHandler.Get)
			protected.PATCH("/streams/:id", cfg.StreamHandler.Update)
			protected.DELETE("/streams/:id", cfg.StreamHandler.Delete)
		}

		// Members
		if cfg.MemberHandler != nil {
			protected.GET("/members", cfg.MemberHandler.List)
			protected.POST("/members", cfg.MemberHandler.Create)
			protected.GET("/members/:id", cfg.MemberHandler.Get)
			protected.PATCH("/members/:id", cfg.MemberHandler.Update)
			protected.DELETE("/members/:id", cfg.MemberHandler.Delete)
		}

		// Attendance
		if cfg.AttendanceHandler != nil {
			protected.POST("/attendance", cfg.AttendanceHandler.Record)
			protected.GET("/attendance", cfg.AttendanceHandler.ListByDate)
			protected.GET("/attendance/summary", cfg.AttendanceHandler.Summary)
			protected.GET("/members/:id/attendance", cfg.AttendanceHandler.MemberHistory)
		}

		// Groups
		if cfg.GroupHandler != nil {
			protected.GET("/groups", cfg.GroupHandler.List)
			protected.POST("/groups", cfg.GroupHandler.Create)
			protected.GET("/groups/:id", cfg.GroupHandler.Get)
			protected.PATCH("/groups/:id", cfg.GroupHandler.Update)
			protected.DELETE("/groups/:id", cfg.GroupHandler.Delete)
			protected.GET("/groups/:id/members", cfg.GroupHandler.ListMembers)
			protected.POST("/groups/:id/members", cfg.GroupHandler.AddMember)
			protected.DELETE("/groups/:id/members/:memberID", cfg.GroupHandler.RemoveMember)
		}

		// Music
		if cfg.MusicHandler != nil {
			protected.GET("/songs", cfg.MusicHandler.ListSongs)
			protected.POST("/songs", cfg.MusicHandler.CreateSong)
			protected.GET("/songs/:id", cfg.MusicHandler.GetSong)
			protected.PATCH("/songs/:id", cfg.MusicHandler.UpdateSong)
			protected.DELETE("/songs/:id", cfg.MusicHandler.DeleteSong)
			protected.GET("/service-plans", cfg.MusicHandler.ListPlans)
			protected.POST("/service-plans", cfg.MusicHandler.CreatePlan)
			protected.GET("/service-plans/:id", cfg.MusicHandler.GetPlan)
			protected.PUT("/service-plans/:id", cfg.MusicHandler.ReplacePlan)
			protected.DELETE("/service-plans/:id", cfg.MusicHandler.DeletePlan)
		}

		// Expenses (admin/treasurer)
		if cfg.ExpenseHandler != nil {
			finance := protected.Group("/expenses")
			if cfg.AuthMiddleware != nil {
				finance.Use(cfg.AuthMiddleware.RequireRole(domain.RoleAdmin, domain.RoleTreasurer))
			}
			finance.GET("", cfg.ExpenseHandler.List)
			finance.POST("", cfg.ExpenseHandler.Create)
			finance.GET("/summary", cfg.ExpenseHandler.Summary)
			finance.GET("/:id", cfg.ExpenseHandler.Get)
			finance.PATCH("/:id", cfg.ExpenseHandler.Update)
			finance.DELETE("/:id", cfg.ExpenseHandler.Delete)
		}

		// AI content
		if cfg.ContentHandler != nil {
			protected.POST("/content/sermons/generate", cfg.ContentHandler.GenerateSermon)
			protected.POST("/content/emails/generate", cfg.ContentHandler.GenerateEmail)
			protected.POST("/content/worship-sets/generate", cfg.ContentHandler.GenerateWorshipSet)
			protected.GET("/content", cfg.ContentHandler.List)
			protected.GET("/content/:id", cfg.ContentHandler.Get)
			protected.DELETE("/content/:id", cfg.ContentHandler.Delete)
		}
		if cfg.EmailHandler != nil {
			protected.POST("/content/:id/send", cfg.EmailHandler.Send)
		}
	}

	return r
}
