// Package service implements the task, member and settings operations over
// the storage boundary. Every operation validates before it mutates, so a
// failed call leaves the store exactly as it was, and all read-modify-write
// cycles run under one lock so concurrent requests cannot clobber each
// other's whole-collection writes.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskflow/internal/models"
	"taskflow/internal/storage"
	"taskflow/internal/storage/postgres"
)

// Service owns the business rules for all persisted entities.
type Service struct {
	store  storage.Store
	logger *logrus.Logger

	// probe checks reachability of a networked database; swapped in tests.
	probe func(ctx context.Context, settings models.ConnectionSettings) error

	// mu serializes read-modify-write cycles against the store.
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// New constructs a Service over the given store.
func New(store storage.Store, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		store:  store,
		logger: logger,
		probe:  postgres.TestConnection,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}
