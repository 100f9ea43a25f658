package handlers

import (
	"github.com/andeantrade/treasury_backend/cmd/docs"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/middleware"
	"github.com/andeantrade/treasury_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbPool *pgxpool.Pool,
) {
	registerCustomValidations()

	r.GET("/", getHome)
	r.GET("/healthz", healthz(dbPool))
	r.GET("/metrics", middleware.MetricsHandler())

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)

	// Swagger routes (disabled in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every write under v1 must carry an acting user
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerMovementRoutes(v1, services.Movement)
	registerConversionRoutes(v1, services.Conversion)
	registerTreasuryRoutes(v1, services.Treasury)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
