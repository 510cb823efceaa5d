package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kushtati/TRANSG/cmd/docs"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/middleware"
	"github.com/kushtati/TRANSG/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. It fails only on malformed rate limit configuration.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	useJSONFieldNames()

	// CORS must run before any route so preflights succeed; credentials stay
	// on because the session travels as cookies.
	r.Use(cors.New(corsConfig(cfg)))

	globalLimiter, err := middleware.NewRateLimiter(cfg.RateLimitGlobal)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_GLOBAL: %w", err)
	}
	r.Use(middleware.RateLimit(globalLimiter))

	authLimiter, err := middleware.NewRateLimiter(cfg.RateLimitAuth)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}
	assistantLimiter, err := middleware.NewRateLimiter(cfg.RateLimitAssistant)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_ASSISTANT: %w", err)
	}

	// Add health check route
	r.GET("/health", getHealth)

	// Register public authentication routes
	RegisterAuthRoutes(r, cfg, services, middleware.RateLimit(authLimiter))

	// Setup API v1 routes with the auth guard, passing service interfaces
	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(assistantLimiter))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	assistantLimiter gin.HandlerFunc,
) {
	// Apply the auth guard to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthGuard(cfg, services.User))

	// Delegate route registration to specific handlers, passing required services
	RegisterClientRoutes(v1, services.Client)
	RegisterShipmentRoutes(v1, services.Shipment)
	RegisterExpenseRoutes(v1, services.Expense)
	RegisterCustomsRoutes(v1)
	RegisterAssistantRoutes(v1, services.Assistant, assistantLimiter)
}

// corsConfig builds the CORS policy from the configured origins.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"X-Request-ID"}
	corsCfg.AllowCredentials = true
	return corsCfg
}

// useJSONFieldNames makes validator errors report json tag names instead of Go
// struct field names, so field-level messages match the wire payload.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
