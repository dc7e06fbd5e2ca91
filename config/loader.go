// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is read from the working directory when no file is given.
	ProjectConfigFile = "talentflow.yaml"

	// EnvFile is the dotenv file read from the working directory.
	EnvFile = ".env"
)

// Environment variables.
const (
	EnvModel            = "TALENTFLOW_MODEL"
	EnvModelBackend     = "TALENTFLOW_MODEL_BACKEND"
	EnvModelTemperature = "TALENTFLOW_MODEL_TEMPERATURE"
	EnvModelTimeout     = "TALENTFLOW_MODEL_TIMEOUT"
	EnvServerAddr       = "TALENTFLOW_SERVER_ADDR"
	EnvCORSOrigins      = "TALENTFLOW_CORS_ORIGINS"
	EnvStoreDriver      = "TALENTFLOW_STORE_DRIVER"
	EnvStoreDSN         = "TALENTFLOW_STORE_DSN"
	EnvTracing          = "TALENTFLOW_TRACING"
	EnvOTLPEndpoint     = "TALENTFLOW_OTLP_ENDPOINT"
	EnvSampleRatio      = "TALENTFLOW_TRACE_SAMPLE_RATIO"
	EnvMetrics          = "TALENTFLOW_METRICS"
	EnvLogLevel         = "TALENTFLOW_LOG_LEVEL"
	EnvLogFormat        = "TALENTFLOW_LOG_FORMAT"

	EnvGoogleAPIKey       = "GOOGLE_API_KEY"
	EnvAnthropicAPIKey    = "ANTHROPIC_API_KEY"
	EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"
	EnvGoogleCloudRegion  = "GOOGLE_CLOUD_LOCATION"
	EnvGoogleUseVertexAI  = "GOOGLE_GENAI_USE_VERTEXAI"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
	lookup func(string) (string, bool)
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, lookup: os.LookupEnv}
}

// Load loads the configuration:
//  1. defaults
//  2. the YAML file at path, or talentflow.yaml in the working directory if path is empty
//  3. .env in the working directory, without overriding variables already set
//  4. environment variables
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	switch {
	case path != "":
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config file", slog.String("path", path))
	default:
		err := cfg.LoadFile(ProjectConfigFile)
		switch {
		case err == nil:
			l.logger.Debug("loaded config file", slog.String("path", ProjectConfigFile))
		case errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("no project config found")
		default:
			return nil, err
		}
	}

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("failed to load env file", slog.String("path", EnvFile), slog.String("error", err.Error()))
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load is a shorthand for NewLoader(nil).Load(path).
func Load(path string) (*Config, error) {
	return NewLoader(nil).Load(path)
}

func (l *Loader) applyEnv(cfg *Config) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := l.lookup(name); ok && v != "" {
			*dst = v
		}
	}
	parse := func(name string, set func(string) error) {
		if v, ok := l.lookup(name); ok && v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	str(EnvModel, &cfg.Model.Name)
	str(EnvModelBackend, &cfg.Model.Backend)
	str(EnvGoogleAPIKey, &cfg.Model.GoogleAPIKey)
	str(EnvAnthropicAPIKey, &cfg.Model.AnthropicAPIKey)
	str(EnvGoogleCloudProject, &cfg.Model.Project)
	str(EnvGoogleCloudRegion, &cfg.Model.Location)
	parse(EnvGoogleUseVertexAI, func(v string) error {
		b, err := strconv.ParseBool(v)
		if b {
			cfg.Model.Backend = BackendVertexAI
		}
		return err
	})
	parse(EnvModelTemperature, func(v string) error {
		f, err := strconv.ParseFloat(v, 32)
		cfg.Model.Temperature = float32(f)
		return err
	})
	parse(EnvModelTimeout, func(v string) (err error) {
		cfg.Model.Timeout, err = time.ParseDuration(v)
		return err
	})

	str(EnvServerAddr, &cfg.Server.Addr)
	parse(EnvCORSOrigins, func(v string) error {
		cfg.Server.CORSOrigins = splitList(v)
		return nil
	})

	str(EnvStoreDriver, &cfg.Store.Driver)
	str(EnvStoreDSN, &cfg.Store.DSN)

	str(EnvTracing, &cfg.Telemetry.Tracing)
	str(EnvOTLPEndpoint, &cfg.Telemetry.OTLPEndpoint)
	parse(EnvSampleRatio, func(v string) (err error) {
		cfg.Telemetry.SampleRatio, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse(EnvMetrics, func(v string) (err error) {
		cfg.Telemetry.Metrics, err = strconv.ParseBool(v)
		return err
	})

	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
