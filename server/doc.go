// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the TalentFlow flows and plan records over HTTP with gin.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /api/flows
//	POST   /api/flows/:name
//	POST   /api/idp/generate
//	POST   /api/plans
//	GET    /api/plans/:id
//	PATCH  /api/plans/:id/status
//	GET    /api/employees/:id/plans
package server
