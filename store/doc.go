// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists Individual Development Plans with gorm over SQLite or PostgreSQL.
package store
