package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/alerts"
	"github.com/fixia-ar/fixia/internal/config"
	"github.com/fixia-ar/fixia/internal/db"
	"github.com/fixia-ar/fixia/internal/logger"
	"github.com/fixia-ar/fixia/internal/metrics"
	mware "github.com/fixia-ar/fixia/internal/middleware"
	"github.com/fixia-ar/fixia/internal/opportunities"
	"github.com/fixia-ar/fixia/internal/projects"
)

func main() {
	log := logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	if err := db.Init(cfg); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer db.Close()
	db.InitRedis(cfg)

	alerts.Init(cfg)
	defer alerts.Close()

	svc := opportunities.NewService(db.Conn, db.Redis, alerts.NewQueueSink(), log)
	opps := opportunities.NewHandler(svc, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware)

	// Health and observability
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "fixia"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})
	e.GET("/metrics", metrics.Handler())

	// Authenticated routes
	api := e.Group("")
	api.Use(mware.JWT(cfg.JWTSecret))

	professional := mware.RequireUserTypes("professional", "dual")
	client := mware.RequireUserTypes("client", "dual")

	api.GET("/opportunities", opps.List, professional)
	api.GET("/opportunities/stats", opps.Stats, professional)
	api.GET("/opportunities/my-proposals", opps.MyProposals, professional)
	api.POST("/opportunities/:id/apply", opps.Apply, professional)

	api.POST("/projects", projects.CreateProject, client)
	api.GET("/projects/me", projects.GetMyProjects, client)
	api.GET("/projects/:id/proposals", projects.ListProjectProposals, client)
	api.POST("/projects/:projectId/proposals/:proposalId/accept", opps.Accept, client)
	api.POST("/projects/:projectId/proposals/:proposalId/reject", opps.Reject, client)

	api.GET("/notifications", alerts.ListNotifications)
	api.POST("/notifications/:id/read", alerts.MarkNotificationRead)

	log.Info("fixia server listening", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
