// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package talent defines the TalentFlow generation flows.
//
// Four flows are provided:
//
//   - generatePersonalizedIdpFlow drafts an Individual Development Plan for an employee.
//   - analyzeTeamSkillGapsFlow analyzes the skill gaps of a team.
//   - extractResumeDetailsFlow extracts plan seeds from a PDF resume given as a data URI.
//   - assistantFlow answers questions about the application in a caller-owned conversation.
//
// [Register] adds the definitions to a [flow.Registry]. [Client] wraps a bound catalog with
// typed methods.
package talent
