// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package talentflow is a schema-bound generation toolkit for talent development: individual
// development plans, team skill-gap analysis, resume extraction and a conversational assistant,
// each expressed as a validated input -> prompt -> model -> validated output flow.
package talentflow

// Version is the version of TalentFlow.
var Version = "v0.1.0"
