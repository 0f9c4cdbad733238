package router

import (
	"time"

	"github.com/tuanona/kasir-bot/internal/config"
	"github.com/tuanona/kasir-bot/internal/handler"
	"github.com/tuanona/kasir-bot/internal/middleware"
	"github.com/tuanona/kasir-bot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// DefaultActionsPerMinute caps how fast one operator can drive the state
// machine through the gateway.
const DefaultActionsPerMinute = 120

// Deps are the collaborators the HTTP layer needs. Jobs and Redis may be
// nil when the job queue is disabled.
type Deps struct {
	Cashier service.CashierService
	Jobs    handler.JobDispatcher
	Redis   *redis.Client
	Limiter *middleware.RateLimiter
}

// New returns a configured Gin engine.
// Dependency graph: Handler ← CashierService ← Store/Ledger/Catalog
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Limiter == nil {
		deps.Limiter = middleware.NewRateLimiter(DefaultActionsPerMinute, time.Minute)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())

	actionsH := handler.NewActionsHandler(deps.Cashier, deps.Jobs)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(deps.Redis))

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), deps.Limiter.Middleware())
	{
		v1.POST("/actions", actionsH.Handle)
	}

	return r
}
