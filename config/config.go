// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the TalentFlow configuration.
//
// Values are layered: built-in defaults, then a YAML file, then a .env file, then the process
// environment. Secrets are only read from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-a2a/talentflow/model"
	"github.com/go-a2a/talentflow/retry"
)

// Gemini backends.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Tracing exporters.
const (
	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOTLP   = "otlp"
)

// Config is the complete TalentFlow configuration.
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Retry     retry.Config    `yaml:"retry"`
	Log       LogConfig       `yaml:"log"`
}

// ModelConfig configures the generative model.
type ModelConfig struct {
	// Name selects the provider: "gemini-*" or "claude-*".
	Name string `yaml:"name"`
	// Backend is the Gemini backend, gemini-api or vertex-ai.
	Backend  string `yaml:"backend"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`

	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`

	// Timeout bounds one flow invocation. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`

	GoogleAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig configures plan persistence.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// TelemetryConfig configures tracing and metrics.
type TelemetryConfig struct {
	ServiceName  string  `yaml:"service_name"`
	Tracing      string  `yaml:"tracing"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRatio  float64 `yaml:"sample_ratio"`
	Metrics      bool    `yaml:"metrics"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:        model.GeminiDefaultModel,
			Backend:     BackendGeminiAPI,
			Location:    "us-central1",
			Temperature: 0.2,
			Timeout:     60 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			DSN:    "talentflow.db",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "talentflow",
			Tracing:     TracingNone,
			SampleRatio: 1.0,
			Metrics:     true,
		},
		Retry: retry.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Model.Name == "" {
		errs = append(errs, errors.New("model.name is required"))
	}
	switch c.Model.Backend {
	case BackendGeminiAPI:
	case BackendVertexAI:
		if c.Model.Project == "" {
			errs = append(errs, errors.New("model.project is required for the vertex-ai backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("model.backend %q is not one of %s, %s", c.Model.Backend, BackendGeminiAPI, BackendVertexAI))
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		errs = append(errs, errors.New("model.temperature must be between 0 and 2"))
	}
	if c.Model.MaxOutputTokens < 0 {
		errs = append(errs, errors.New("model.max_output_tokens must not be negative"))
	}
	if c.Model.Timeout < 0 {
		errs = append(errs, errors.New("model.timeout must not be negative"))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	switch c.Store.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not one of %s, %s", c.Store.Driver, DriverSQLite, DriverPostgres))
	}
	if c.Store.DSN == "" {
		errs = append(errs, errors.New("store.dsn is required"))
	}

	switch c.Telemetry.Tracing {
	case TracingNone, TracingStdout, TracingOTLP:
	default:
		errs = append(errs, fmt.Errorf("telemetry.tracing %q is not one of %s, %s, %s", c.Telemetry.Tracing, TracingNone, TracingStdout, TracingOTLP))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, errors.New("telemetry.sample_ratio must be between 0 and 1"))
	}

	if err := c.Retry.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ModelOptions returns the invoker options described by the model section.
func (c *Config) ModelOptions() []model.Option {
	var opts []model.Option

	switch {
	case strings.HasPrefix(c.Model.Name, "claude-"):
		if c.Model.AnthropicAPIKey != "" {
			opts = append(opts, model.WithAPIKey(c.Model.AnthropicAPIKey))
		}
	case c.Model.Backend == BackendVertexAI:
		opts = append(opts, model.WithVertexAI(c.Model.Project, c.Model.Location))
	default:
		if c.Model.GoogleAPIKey != "" {
			opts = append(opts, model.WithAPIKey(c.Model.GoogleAPIKey))
		}
	}

	opts = append(opts, model.WithTemperature(c.Model.Temperature))
	if c.Model.MaxOutputTokens > 0 {
		opts = append(opts, model.WithMaxOutputTokens(c.Model.MaxOutputTokens))
	}
	return opts
}
