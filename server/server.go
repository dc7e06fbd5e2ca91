// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server serves a gin engine until its context is canceled.
type Server struct {
	Engine *gin.Engine

	addr            string
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewServer returns a [Server] listening on addr.
func NewServer(addr string, cfg RouterConfig, shutdownTimeout time.Duration) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Engine:          NewRouter(cfg),
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "http server listening", slog.String("addr", s.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	s.logger.InfoContext(ctx, "http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
