package api

import (
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/api/handlers"
	apimiddleware "github.com/PhantasticUniverse/EtherDAW-sub000/internal/api/middleware"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/cache"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/config"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/metrics"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Backends are the optional stores and metric sinks the server runs with.
// Any field may be nil.
type Backends struct {
	DB         *gorm.DB
	Cache      *cache.Cache
	CloudWatch *metrics.Client
}

func SetupRouter(b Backends, cfg *config.Config, version string) *gin.Engine {
	router := gin.New()

	sentryMetrics := metrics.NewSentryMetrics()
	compileService := services.NewCompileService(
		b.Cache,
		services.NewHistoryService(b.DB),
		sentryMetrics,
		b.CloudWatch,
	)

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())
	router.Use(apimiddleware.SentryMiddleware())
	router.Use(apimiddleware.RequestTracking(sentryMetrics, b.CloudWatch))
	router.Use(apimiddleware.CORS())

	healthHandler := handlers.NewHealthHandler(b.DB, b.Cache)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version, compileService)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	if cfg.IsGatewayMode() {
		v1.Use(apimiddleware.GatewayAuth())
	} else {
		v1.Use(apimiddleware.NoAuth())
	}
	v1.Use(apimiddleware.BodyLimit(cfg.MaxScoreBytes))
	{
		compileHandler := handlers.NewCompileHandler(compileService)
		v1.POST("/compile", compileHandler.Compile)
		v1.POST("/validate", compileHandler.Validate)
		v1.POST("/analyze", compileHandler.Analyze)
		v1.POST("/script/compile", compileHandler.CompileScript)
		v1.GET("/compilations", compileHandler.History)
		v1.GET("/compilations/:hash", compileHandler.Compilation)
		v1.DELETE("/compilations/:hash/cache", compileHandler.InvalidateCache)
	}

	return router
}
