package handlers

import (
	"github.com/finzen-app/finzen_backend/cmd/docs"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/middleware"
	"github.com/finzen-app/finzen_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/health", GetHome)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)

	// User-level routes: any authenticated role (admin is a superset)
	userRoutes := r.Group("",
		middleware.RequireSession(services.IdentityGateway, cfg.SessionCookieName),
		middleware.RequireRole(domain.RoleUser),
	)
	registerTransactionRoutes(userRoutes, services.Transaction)

	// Admin-only, read-only views
	adminRoutes := r.Group("",
		middleware.RequireSession(services.IdentityGateway, cfg.SessionCookieName),
		middleware.RequireRole(domain.RoleAdmin),
	)
	registerAdminRoutes(adminRoutes, services.User, services.Reporting)

	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators adds the txkind rule used by the transaction DTOs.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txkind", func(fl validator.FieldLevel) bool {
			return domain.TransactionKind(fl.Field().String()).IsValid()
		})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
