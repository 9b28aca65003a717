// Package storage defines the persistence boundary for the task engine:
// whole-collection reads and writes over three named collections. Adapters
// implement it against an in-process map, a local SQLite file, or a
// networked Postgres database; callers never issue partial updates.
package storage

import (
	"context"

	"taskflow/internal/models"
)

// Collection names as persisted by the key-value adapters.
const (
	CollectionTasks      = "tasks"
	CollectionMembers    = "members"
	CollectionConnection = "connection"
)

// Store is raw get/put access to the persisted collections. No validation
// happens here; services read a full collection, mutate in memory and write
// the full collection back.
type Store interface {
	ReadTasks(ctx context.Context) ([]models.Task, error)
	WriteTasks(ctx context.Context, tasks []models.Task) error

	ReadMembers(ctx context.Context) ([]models.TeamMember, error)
	WriteMembers(ctx context.Context, members []models.TeamMember) error

	// ReadConnection returns nil when no settings have been saved yet.
	ReadConnection(ctx context.Context) (*models.ConnectionSettings, error)
	WriteConnection(ctx context.Context, settings models.ConnectionSettings) error

	Close() error
}
