// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/talentflow/config"
	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/model"
	"github.com/go-a2a/talentflow/pkg/logging"
	"github.com/go-a2a/talentflow/talent"
)

// app carries the state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	modelName  string

	cfg    *config.Config
	logger *slog.Logger

	newInvoker func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.Invoker, error)
}

func newApp() *app {
	return &app{newInvoker: defaultInvoker}
}

func defaultInvoker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.Invoker, error) {
	opts := append(cfg.ModelOptions(), model.WithLogger(logger))
	return model.NewInvoker(ctx, cfg.Model.Name, opts...)
}

// setup loads the configuration and the logger. Flags win over the configuration.
func (a *app) setup(stderr io.Writer) error {
	loader := config.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg, err := loader.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.modelName != "" {
		cfg.Model.Name = a.modelName
	}

	a.cfg = cfg
	a.logger = logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(a.logger)
	return nil
}

// client builds a [talent.Client] on the configured model.
func (a *app) client(ctx context.Context, opts ...flow.Option) (*talent.Client, error) {
	invoker, err := a.newInvoker(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create %s invoker: %w", a.cfg.Model.Name, err)
	}
	opts = append([]flow.Option{
		flow.WithLogger(a.logger),
		flow.WithTimeout(a.cfg.Model.Timeout),
	}, opts...)
	return talent.NewClient(invoker, opts...)
}

func (a *app) context(ctx context.Context) context.Context {
	return logging.NewContext(ctx, a.logger)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
