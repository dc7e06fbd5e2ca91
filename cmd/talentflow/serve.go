// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/go-a2a/talentflow"
	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/internal/telemetry"
	"github.com/go-a2a/talentflow/server"
	"github.com/go-a2a/talentflow/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the flows and plan records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(a.context(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			srv, shutdown, err := a.newServer(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					a.logger.WarnContext(ctx, "telemetry shutdown", "error", err)
				}
			}()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config")
	return cmd
}

func (a *app) newServer(ctx context.Context) (_ *server.Server, _ telemetry.ShutdownFunc, err error) {
	cfg := a.cfg

	tp, shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     talentflow.Version,
		Exporter:    cfg.Telemetry.Tracing,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	}, a.logger)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = shutdown(context.WithoutCancel(ctx))
		}
	}()
	opts := []flow.Option{flow.WithTracerProvider(tp)}

	routes := server.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      a.logger,
	}
	if cfg.Telemetry.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, flow.WithMetrics(flow.NewMetrics(reg)))
		routes.Gatherer = reg
	}

	client, err := a.client(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	routes.FlowHandler = server.NewFlowHandler(client.Catalog(), &cfg.Retry)
	routes.IdpHandler = server.NewIdpHandler(client)
	routes.PlanHandler = server.NewPlanHandler(store.NewPlanStore(db))

	return server.NewServer(cfg.Server.Addr, routes, cfg.Server.ShutdownTimeout), shutdown, nil
}
