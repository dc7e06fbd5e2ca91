// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/internal/pool"
	"github.com/go-a2a/talentflow/schema"
)

const (
	// GeminiDefaultModel is the default model name for [Gemini].
	GeminiDefaultModel = "gemini-2.0-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// Gemini invokes Google Gemini models.
type Gemini struct {
	client *genai.Client
	model  string
	cfg    Config
}

var _ Invoker = (*Gemini)(nil)

// NewGemini creates a new [Gemini] invoker.
//
// Without [WithVertexAI] the Gemini API is used, authenticated by [WithAPIKey] or the
// [EnvGoogleAPIKey] environment variable.
func NewGemini(ctx context.Context, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiDefaultModel
	}
	cfg := newConfig(opts...)

	cc := &genai.ClientConfig{}
	if cfg.vertexAI {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("get credentials for vertex ai: %w", err)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.project
		cc.Location = cfg.location
		cc.Credentials = creds
	} else {
		apiKey := cfg.apiKey
		if apiKey == "" {
			apiKey = os.Getenv(EnvGoogleAPIKey)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("either WithAPIKey or %q environment variable must be set", EnvGoogleAPIKey)
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  modelName,
		cfg:    cfg,
	}, nil
}

// Name returns the model name.
func (m *Gemini) Name() string { return m.model }

// Generate implements [Invoker].
func (m *Gemini) Generate(ctx context.Context, req *Request) (*Response, error) {
	contents, err := inlineDataURIs(req.Contents)
	if err != nil {
		return nil, err
	}
	contents = appendUserContent(contents)

	config := geminiConfig(req, m.cfg)
	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, config)
	if err != nil {
		return nil, Classify(fmt.Errorf("gemini API error: %w", err))
	}

	out, err := geminiResponse(resp)
	if err != nil {
		m.cfg.logger.WarnContext(ctx, "gemini returned no usable output", slog.String("model", m.model), slog.Any("error", err))
		return nil, err
	}
	out.Model = m.model
	m.cfg.logger.DebugContext(ctx, "gemini response",
		slog.String("model", m.model),
		slog.String("finish_reason", out.FinishReason),
		slog.Int("text_len", len(out.Text)),
	)
	return out, nil
}

func geminiConfig(req *Request, cfg Config) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     cfg.temperature,
		MaxOutputTokens: cfg.maxOutputTokens,
		SafetySettings:  cfg.safetySettings,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.OutputSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema.ToGenaiSchema(req.OutputSchema)
	}
	return config
}

// appendUserContent ensures the conversation ends with a user turn.
func appendUserContent(contents []*genai.Content) []*genai.Content {
	switch {
	case len(contents) == 0:
		return append(contents, genai.NewContentFromText(`Handle the requests as specified in the System Instruction.`, genai.RoleUser))
	case strings.ToLower(contents[len(contents)-1].Role) != genai.RoleUser:
		return append(contents, genai.NewContentFromText(`Continue the conversation as instructed.`, genai.RoleUser))
	default:
		return contents
	}
}

var refusalReasons = []genai.FinishReason{
	genai.FinishReasonSafety,
	genai.FinishReasonRecitation,
	genai.FinishReasonBlocklist,
	genai.FinishReasonProhibitedContent,
	genai.FinishReasonSPII,
}

// geminiResponse extracts the text of the first candidate.
func geminiResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrRefusedOrEmpty)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", ErrRefusedOrEmpty, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: no candidates", ErrRefusedOrEmpty)
	}

	cand := resp.Candidates[0]
	if slices.Contains(refusalReasons, cand.FinishReason) {
		return nil, fmt.Errorf("%w: finish reason %s", ErrRefusedOrEmpty, cand.FinishReason)
	}

	sb := pool.String.Get()
	defer pool.String.Put(sb)
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
	}

	return &Response{
		Text:         sb.String(),
		FinishReason: string(cand.FinishReason),
	}, nil
}
