package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/shortsview-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shortsview-backend/internal/http/middleware"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type RouterConfig struct {
	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	CatalogHandler   *httpH.CatalogHandler
	TrackingHandler  *httpH.TrackingHandler
	AnalyticsHandler *httpH.AnalyticsHandler
	HealthHandler    *httpH.HealthHandler

	Templates   *template.Template
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string

	// MediaDir is served under MediaPrefix when set (local storage only).
	MediaDir    string
	MediaPrefix string

	ServiceName string
	Tracing     bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		name := cfg.ServiceName
		if name == "" {
			name = "shortsview"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Media
	if cfg.MediaDir != "" && cfg.MediaPrefix != "" {
		r.Static(cfg.MediaPrefix, cfg.MediaDir)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	// Auth (public)
	public := r.Group("/")
	public.Use(cfg.AuthMiddleware.Optional())
	if cfg.AuthHandler != nil {
		public.GET("/login", cfg.AuthHandler.LoginPage)
		public.POST("/login", cfg.AuthHandler.Login)
		public.GET("/register", cfg.AuthHandler.RegisterPage)
		public.POST("/register", cfg.AuthHandler.Register)
		public.GET("/logout", cfg.AuthHandler.Logout)
	}

	// Pages behind a session
	pages := r.Group("/")
	pages.Use(cfg.AuthMiddleware.RequirePage())
	if cfg.CatalogHandler != nil {
		pages.GET("/", cfg.CatalogHandler.Index)
	}

	// JSON endpoints behind a session
	api := r.Group("/")
	api.Use(cfg.AuthMiddleware.RequireAPI())
	if cfg.TrackingHandler != nil {
		api.POST("/increment_view/:id", cfg.TrackingHandler.IncrementView)
		api.POST("/track_view", cfg.TrackingHandler.TrackView)
		api.POST("/track_emotion", cfg.TrackingHandler.TrackEmotion)
	}

	// Admin
	admin := r.Group("/")
	admin.Use(cfg.AuthMiddleware.RequirePage(), cfg.AuthMiddleware.RequireAdmin())
	if cfg.CatalogHandler != nil {
		admin.GET("/admin", cfg.CatalogHandler.Admin)
		admin.POST("/upload", cfg.CatalogHandler.Upload)
		admin.GET("/delete_video/:id", cfg.CatalogHandler.DeleteVideo)
	}
	if cfg.AnalyticsHandler != nil {
		admin.GET("/analytics", cfg.AnalyticsHandler.Views)
		admin.GET("/emotion_analytics", cfg.AnalyticsHandler.Emotions)
	}

	return r
}
