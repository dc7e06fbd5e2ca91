// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"

	"google.golang.org/genai"
)

// Config holds the settings shared by the provider invokers.
type Config struct {
	apiKey string

	// vertexAI selects the Vertex AI backend for Gemini.
	vertexAI bool
	project  string
	location string

	temperature     *float32
	maxOutputTokens int32

	// safetySettings contains safety settings for content generation.
	safetySettings []*genai.SafetySetting

	// logger is the logger used for logging.
	logger *slog.Logger
}

func newConfig(opts ...Option) Config {
	cfg := Config{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		cfg = opt.apply(cfg)
	}
	return cfg
}

// Option is a function that modifies the [Config] model.
type Option interface {
	apply(base Config) Config
}

type apiKeyOption string

func (o apiKeyOption) apply(base Config) Config {
	base.apiKey = string(o)
	return base
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return apiKeyOption(key)
}

type vertexAIOption struct{ project, location string }

func (o vertexAIOption) apply(base Config) Config {
	base.vertexAI = true
	base.project = o.project
	base.location = o.location
	return base
}

// WithVertexAI selects the Vertex AI backend in project and location, authenticated with
// application default credentials.
func WithVertexAI(project, location string) Option {
	return vertexAIOption{project: project, location: location}
}

type temperatureOption float32

func (o temperatureOption) apply(base Config) Config {
	t := float32(o)
	base.temperature = &t
	return base
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return temperatureOption(t)
}

type maxOutputTokensOption int32

func (o maxOutputTokensOption) apply(base Config) Config {
	base.maxOutputTokens = int32(o)
	return base
}

// WithMaxOutputTokens sets the maximum number of generated tokens.
func WithMaxOutputTokens(n int32) Option {
	return maxOutputTokensOption(n)
}

type safetySettingOption []*genai.SafetySetting

func (o safetySettingOption) apply(base Config) Config {
	base.safetySettings = append(base.safetySettings, o...)
	return base
}

// WithSafetySettings sets the safety settings for Gemini models.
func WithSafetySettings(settings []*genai.SafetySetting) Option {
	return safetySettingOption(settings)
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger of the invoker.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}
