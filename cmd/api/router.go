package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaign-backend/internal/shared/middleware"
	"campaign-backend/internal/shared/response"
	"campaign-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/ping", pingHandler)
	router.GET("/health", healthCheckHandler(c))

	setupPlayerRoutes(router, c)
	setupCampaignRoutes(router, c)
	setupCharacterRoutes(router, c)

	return router
}

// ========================================
// PLAYER ROUTES
// ========================================
func setupPlayerRoutes(r *gin.Engine, c *container.Container) {
	players := r.Group("/player")
	{
		players.POST("/register", c.PlayerHandler.Register)
		players.GET("/get", c.PlayerHandler.Get)
	}
}

// ========================================
// CAMPAIGN ROUTES
// ========================================
func setupCampaignRoutes(r *gin.Engine, c *container.Container) {
	campaigns := r.Group("/campaign")
	{
		campaigns.POST("/create", c.CampaignHandler.Create)
		campaigns.GET("/get", c.CampaignHandler.Get)
		campaigns.POST("/add", c.CampaignHandler.AddMember)
		campaigns.POST("/edit-permissions", c.CampaignHandler.EditPermissions)
		campaigns.POST("/edit", c.CampaignHandler.Edit)
	}
}

// ========================================
// CHARACTER ROUTES
// ========================================
func setupCharacterRoutes(r *gin.Engine, c *container.Container) {
	characters := r.Group("/character")
	{
		characters.GET("/get", c.CharacterHandler.Get)
		characters.POST("/upload", c.CharacterHandler.Upload)
		characters.POST("/get-path", c.CharacterHandler.GetPath)
		characters.POST("/set-path", c.CharacterHandler.SetPath)
	}
}

func pingHandler(c *gin.Context) {
	response.Message(c, http.StatusOK, "hello")
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler reports 503 only when the database is down; a missing cache degrades reads but not correctness
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["database_pool"] = stats
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "unavailable"
		} else if redisStatus != "ok" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
