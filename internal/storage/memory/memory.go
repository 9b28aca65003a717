// Package memory is an in-process store used by tests and as a fallback when
// no durable backend is configured. Collections round-trip through JSON so
// callers see the same value-copy semantics as the durable adapters.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"taskflow/internal/models"
	"taskflow/internal/storage"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

func (s *Store) ReadTasks(_ context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.read(storage.CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) WriteTasks(_ context.Context, tasks []models.Task) error {
	return s.write(storage.CollectionTasks, tasks)
}

func (s *Store) ReadMembers(_ context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.read(storage.CollectionMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Store) WriteMembers(_ context.Context, members []models.TeamMember) error {
	return s.write(storage.CollectionMembers, members)
}

func (s *Store) ReadConnection(_ context.Context) (*models.ConnectionSettings, error) {
	s.mu.RLock()
	raw, ok := s.collections[storage.CollectionConnection]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var settings models.ConnectionSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", storage.CollectionConnection, err)
	}
	return &settings, nil
}

func (s *Store) WriteConnection(_ context.Context, settings models.ConnectionSettings) error {
	return s.write(storage.CollectionConnection, settings)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) read(name string, dest any) error {
	s.mu.RLock()
	raw, ok := s.collections[name]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	s.mu.Lock()
	s.collections[name] = raw
	s.mu.Unlock()
	return nil
}
