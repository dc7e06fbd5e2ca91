// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/go-a2a/talentflow/pkg/logging"
)

// ErrNotFound is returned when no plan has the requested ID.
var ErrNotFound = errors.New("plan not found")

// PlanStore persists plans.
type PlanStore interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id uuid.UUID) (*Plan, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Plan, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Plan, error)
}

// Open connects to the database named by driver and dsn and migrates the plan table.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	// every connection to an in-memory database opens a new, empty one
	if driver == "sqlite" && strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&Plan{}); err != nil {
		return nil, fmt.Errorf("migrate plans: %w", err)
	}
	return db, nil
}

type planStore struct {
	db *gorm.DB
}

var _ PlanStore = (*planStore)(nil)

// NewPlanStore returns a [PlanStore] backed by db.
func NewPlanStore(db *gorm.DB) PlanStore {
	return &planStore{db: db}
}

func (s *planStore) Create(ctx context.Context, plan *Plan) error {
	if plan.EmployeeID == "" {
		return ErrMissingEmployee
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	logging.FromContext(ctx).DebugContext(ctx, "plan created",
		slog.String("plan_id", plan.ID.String()),
		slog.String("employee_id", plan.EmployeeID),
	)
	return nil
}

func (s *planStore) Get(ctx context.Context, id uuid.UUID) (*Plan, error) {
	var plan Plan
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}
	return &plan, nil
}

func (s *planStore) ListByEmployee(ctx context.Context, employeeID string) ([]*Plan, error) {
	out := []*Plan{}
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list plans of %s: %w", employeeID, err)
	}
	return out, nil
}

func (s *planStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Plan, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&Plan{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update plan %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}
