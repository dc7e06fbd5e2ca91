// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package talent

import (
	"context"
	"fmt"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/model"
)

// Client runs the TalentFlow flows with typed inputs and outputs.
type Client struct {
	catalog *flow.Catalog
}

// NewRegistry returns a frozen registry holding every TalentFlow flow.
func NewRegistry() (*flow.Registry, error) {
	reg := flow.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, fmt.Errorf("register talent flows: %w", err)
	}
	reg.Freeze()
	return reg, nil
}

// NewClient binds the TalentFlow flows to invoker.
func NewClient(invoker model.Invoker, opts ...flow.Option) (*Client, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	cat, err := reg.Bind(invoker, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{catalog: cat}, nil
}

// Catalog returns the bound flows.
func (c *Client) Catalog() *flow.Catalog { return c.catalog }

// GenerateIdp drafts an Individual Development Plan.
func (c *Client) GenerateIdp(ctx context.Context, in IdpInput) (IdpOutput, error) {
	return call[IdpInput, IdpOutput](ctx, c, IdpFlow, in)
}

// AnalyzeSkillGaps analyzes the skill gaps of a team.
func (c *Client) AnalyzeSkillGaps(ctx context.Context, in SkillGapInput) (SkillGapOutput, error) {
	return call[SkillGapInput, SkillGapOutput](ctx, c, SkillGapFlow, in)
}

// ExtractResume extracts plan details from a resume data URI.
func (c *Client) ExtractResume(ctx context.Context, in ResumeInput) (ResumeDetails, error) {
	return call[ResumeInput, ResumeDetails](ctx, c, ResumeFlow, in)
}

// Ask answers the latest question of a conversation.
func (c *Client) Ask(ctx context.Context, in AssistantInput) (AssistantOutput, error) {
	return call[AssistantInput, AssistantOutput](ctx, c, AssistantFlow, in)
}

func call[In, Out any](ctx context.Context, c *Client, name string, in In) (Out, error) {
	f, err := c.catalog.Flow(name)
	if err != nil {
		var zero Out
		return zero, err
	}
	return flow.Call[In, Out](ctx, f, in)
}
