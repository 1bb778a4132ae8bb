package handler

import (
	"log/slog"
	"net/http"
	"time"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything the HTTP surface is built from. Metrics
// and Limiter are optional.
type RouterConfig struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	Metrics        *middleware.Metrics
	Limiter        *middleware.IPRateLimiter
	DB             Pinger

	Auth       service.AuthService
	Movies     service.MovieService
	Ledger     service.LedgerService
	Comments   service.CommentService
	Categories service.CategoryService
	Proposals  service.ProposalService
	Reports    service.ReportService
}

// NewRouter mounts every endpoint under /api. /metrics sits at the root
// when metrics are enabled.
func NewRouter(cfg RouterConfig) *gin.Engine {
	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
		r.GET("/metrics", cfg.Metrics.Handler())
	}
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Limiter != nil {
		r.Use(middleware.RateLimit(cfg.Limiter))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Abort(c, http.StatusNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	g := Guards{
		Optional: middleware.OptionalAuth(cfg.Auth),
		User:     middleware.AuthMiddleware(cfg.Auth),
		Admin:    middleware.RequireAdmin(),
	}

	api := r.Group("/api")
	NewHealthHandler(cfg.DB).RegisterRoutes(api)
	NewAuthHandler(cfg.Auth).RegisterRoutes(api)
	NewMovieHandler(cfg.Movies).RegisterRoutes(api, g)
	NewEngagementHandler(cfg.Ledger).RegisterRoutes(api, g)
	NewCommentHandler(cfg.Comments).RegisterRoutes(api, g)
	NewCategoryHandler(cfg.Categories).RegisterRoutes(api, g)
	NewProposalHandler(cfg.Proposals).RegisterRoutes(api, g)
	NewReportHandler(cfg.Reports).RegisterRoutes(api, g)

	return r
}

// WithCORS lets the single-page client on origins call the API with a bearer token.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
