// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-a2a/talentflow/pkg/logging"
)

// RouterConfig holds the handlers mounted by [NewRouter]. Nil handlers are not mounted.
type RouterConfig struct {
	FlowHandler *FlowHandler
	IdpHandler  *IdpHandler
	PlanHandler *PlanHandler

	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer

	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"X-Invocation-Id"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		if cfg.FlowHandler != nil {
			api.GET("/flows", cfg.FlowHandler.ListFlows)
			api.POST("/flows/:name", cfg.FlowHandler.InvokeFlow)
		}

		if cfg.IdpHandler != nil {
			api.POST("/idp/generate", cfg.IdpHandler.Generate)
		}

		if cfg.PlanHandler != nil {
			api.POST("/plans", cfg.PlanHandler.Create)
			api.GET("/plans/:id", cfg.PlanHandler.Get)
			api.PATCH("/plans/:id/status", cfg.PlanHandler.UpdateStatus)
			api.GET("/employees/:id/plans", cfg.PlanHandler.ListByEmployee)
		}
	}

	return r
}

// requestLogger attaches logger to the request context and logs each request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logging.NewContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.InfoContext(ctx, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
