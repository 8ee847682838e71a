// Package store persists solve runs so past schedules and their reports
// can be listed and inspected later.
package store

import (
	"context"

	"github.com/me/rota/pkg/model"
)

// Store defines the persistence layer for solve runs.
type Store interface {
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
