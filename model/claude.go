// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/internal/pool"
	"github.com/go-a2a/talentflow/schema"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = "claude-3-5-sonnet-latest"

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	claudeDefaultMaxTokens = 4096
)

// Claude invokes Anthropic Claude models.
//
// Claude has no response schema parameter, so the output schema is rendered as JSON Schema into
// the system prompt.
type Claude struct {
	client anthropic.Client
	model  string
	cfg    Config
}

var _ Invoker = (*Claude)(nil)

// NewClaude creates a new [Claude] invoker.
func NewClaude(ctx context.Context, modelName string, opts ...Option) (*Claude, error) {
	if modelName == "" {
		modelName = ClaudeDefaultModel
	}
	cfg := newConfig(opts...)

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv(EnvAnthropicAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("either WithAPIKey or %q environment variable must be set", EnvAnthropicAPIKey)
	}

	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  modelName,
		cfg:    cfg,
	}, nil
}

// Name returns the model name.
func (m *Claude) Name() string { return m.model }

// Generate implements [Invoker].
func (m *Claude) Generate(ctx context.Context, req *Request) (*Response, error) {
	params, err := claudeParams(m.model, req, m.cfg)
	if err != nil {
		return nil, err
	}

	msg, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, Classify(fmt.Errorf("claude API error: %w", err))
	}

	out, err := claudeResponse(msg)
	if err != nil {
		m.cfg.logger.WarnContext(ctx, "claude returned no usable output", slog.String("model", m.model), slog.Any("error", err))
		return nil, err
	}
	out.Model = m.model
	return out, nil
}

func claudeParams(model string, req *Request, cfg Config) (anthropic.MessageNewParams, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: claudeDefaultMaxTokens,
	}
	if cfg.maxOutputTokens > 0 {
		params.MaxTokens = int64(cfg.maxOutputTokens)
	}
	if cfg.temperature != nil {
		params.Temperature = anthropic.Float(float64(*cfg.temperature))
	}

	system, err := claudeSystem(req)
	if err != nil {
		return params, err
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	for _, c := range appendUserContent(req.Contents) {
		blocks, err := claudeBlocks(c)
		if err != nil {
			return params, err
		}
		if len(blocks) == 0 {
			continue
		}
		if c.Role == genai.RoleModel {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
			continue
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(blocks...))
	}
	return params, nil
}

// claudeSystem returns the system prompt, followed by the JSON output instruction when the
// request carries an output schema.
func claudeSystem(req *Request) (string, error) {
	if req.OutputSchema == nil {
		return req.System, nil
	}
	js, err := sonic.MarshalString(schema.ToJSONSchema(req.OutputSchema))
	if err != nil {
		return "", fmt.Errorf("marshal output schema: %w", err)
	}

	sb := pool.String.Get()
	defer pool.String.Put(sb)
	if req.System != "" {
		sb.WriteString(req.System)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Respond with a single JSON object, and nothing else, that conforms to this JSON Schema:\n")
	sb.WriteString(js)
	return sb.String(), nil
}

func claudeBlocks(c *genai.Content) ([]anthropic.ContentBlockParamUnion, error) {
	if c == nil {
		return nil, nil
	}
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(c.Parts))
	for _, p := range c.Parts {
		switch {
		case p == nil:
		case p.Text != "":
			blocks = append(blocks, anthropic.NewTextBlock(p.Text))
		case p.FileData != nil:
			d, err := ParseDataURI(p.FileData.FileURI)
			if err != nil {
				return nil, err
			}
			block, err := claudeDocument(d.MIMEType, d.Base64)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		case p.InlineData != nil:
			block, err := claudeDocument(p.InlineData.MIMEType, base64.StdEncoding.EncodeToString(p.InlineData.Data))
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

func claudeDocument(mimeType, data string) (anthropic.ContentBlockParamUnion, error) {
	if mimeType != "application/pdf" {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("%w: claude accepts PDF documents only, got %q", ErrInvalidDataURI, mimeType)
	}
	return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: data}), nil
}

// claudeResponse joins the text blocks of msg.
func claudeResponse(msg *anthropic.Message) (*Response, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrRefusedOrEmpty)
	}
	stop := string(msg.StopReason)
	if stop == "refusal" {
		return nil, fmt.Errorf("%w: stop reason %s", ErrRefusedOrEmpty, stop)
	}

	var texts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			texts = append(texts, block.Text)
		}
	}
	return &Response{
		Text:         strings.Join(texts, ""),
		FinishReason: stop,
	}, nil
}
