package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/adapters/signal"
	"github.com/akarsh286/Syncpad/internal/app/orch"
	"github.com/akarsh286/Syncpad/internal/config"
)

// CORSMiddleware answers preflights and stamps the configured frontend
// origin. An empty allowed_origin permits any origin (dev mode).
func CORSMiddleware(allowed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := allowed
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, runner CodeRunner) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(cfg.AllowedOrigin))

	h := &handlers{orch: o, runner: runner}
	ctrl := signal.NewController(o, cfg)

	api := r.Group("/api")
	api.GET("/room/:roomID", h.roomExists)
	api.POST("/run", h.run)
	api.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
