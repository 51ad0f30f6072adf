// Package server wires the HTTP routes of the marketplace API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"campfire/internal/config"
	_ "campfire/internal/docs" // Import swagger docs
	"campfire/internal/handlers"
	"campfire/internal/middleware"
	"campfire/internal/services"
)

// NewRouter builds the gin engine with every service wired to db.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Initialize services
	awardService := services.NewAwardService(db)
	holdingService := services.NewHoldingService(db)
	listingService := services.NewListingService(db, awardService)
	queryService := services.NewListingQueryService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(listingService, queryService, auditService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	awardHandler := handlers.NewAwardHandler(awardService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")

	// Wallet tokens are verified when present; REQUIRE_WALLET_AUTH makes
	// them mandatory for the whole API surface.
	public := v1.Group("")
	public.Use(middleware.WalletAuth(cfg.WalletJWTSecret, cfg.RequireWalletAuth))

	listings := public.Group("/listings")
	listings.GET("", listingHandler.GetListings)
	listings.GET("/:id", listingHandler.GetListingByID)
	listings.POST("", middleware.RateLimit(cfg.RateLimitPerSecond), listingHandler.ListingAction)

	public.GET("/holdings/:id", holdingHandler.GetHoldingByID)
	public.GET("/wallets/:wallet/holdings", holdingHandler.GetWalletHoldings)

	// Routes for the award issuance pipeline
	internal := v1.Group("/internal")
	internal.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	internal.POST("/awards", awardHandler.IssueAward)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
