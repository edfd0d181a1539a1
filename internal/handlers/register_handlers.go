package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/docflow_backend/cmd/docs"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/SscSPs/docflow_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// gatherer backs /metrics; nil disables the endpoint.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	adminOnly := middleware.RequireRoles(domain.ActorAdmin)
	contractReaders := middleware.RequireRoles(domain.ActorAdmin, domain.ActorProvider)

	registerPartnerRoutes(v1, service.Partner, adminOnly)
	registerQuoteRoutes(v1, service.Quote, adminOnly)
	registerInvoiceRoutes(v1, service.Invoice, adminOnly)
	registerContractRoutes(v1, service.Contract, service.Signature, contractReaders, adminOnly)

	sendGuards := []gin.HandlerFunc{adminOnly}
	if cfg.RateLimitSend != "" {
		limiter, err := middleware.NewLimiter(cfg.RateLimitSend)
		if err != nil {
			slog.Error("Invalid send rate limit, dispatch is not rate limited",
				slog.String("rate", cfg.RateLimitSend), slog.String("error", err.Error()))
		} else {
			sendGuards = append(sendGuards, middleware.RateLimit(limiter))
		}
	}
	registerDocumentRoutes(v1, service.Document, contractReaders, sendGuards...)
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
