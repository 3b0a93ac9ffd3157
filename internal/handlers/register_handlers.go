package handlers

import (
	"time"

	"github.com/financeflow/backend/cmd/docs"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/middleware"
	"github.com/financeflow/backend/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate := limiter.Rate{Period: time.Second, Limit: int64(cfg.RateLimitRPS)}
	store := memory.NewStore()
	v1 := r.Group("/api/v1", middleware.RateLimit(limiter.New(store, rate)))

	registerTransactionRoutes(v1, services.Transaction, services.Reporting)
	registerFixedExpenseRoutes(v1, services.Transaction, services.Replicator)
	registerInstallmentRoutes(v1, services.Installment)
	registerSavingsRoutes(v1, services.Savings)
	registerRateRoutes(v1, services.Rates)
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
