// Package sqlite is the local persistence adapter. Each collection is held
// as a single JSON document in a two-column table, mirroring the
// whole-collection read/write contract of the storage interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"taskflow/internal/models"
	"taskflow/internal/storage"
)

// Store wraps access to the SQLite database file.
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

var _ storage.Store = (*Store)(nil)

// Open initializes the SQLite store and runs the required migration.
func Open(dbPath string, logger *logrus.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if logger == nil {
		logger = logrus.New()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Whole-collection writes never benefit from parallel connections.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.WithField("path", dbPath).Info("sqlite store ready")
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmt := `CREATE TABLE IF NOT EXISTS collections (
        name TEXT PRIMARY KEY,
        data TEXT NOT NULL,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    );`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (s *Store) ReadTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.readCollection(ctx, storage.CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) WriteTasks(ctx context.Context, tasks []models.Task) error {
	return s.writeCollection(ctx, storage.CollectionTasks, tasks)
}

func (s *Store) ReadMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.readCollection(ctx, storage.CollectionMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Store) WriteMembers(ctx context.Context, members []models.TeamMember) error {
	return s.writeCollection(ctx, storage.CollectionMembers, members)
}

func (s *Store) ReadConnection(ctx context.Context) (*models.ConnectionSettings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, storage.CollectionConnection).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", storage.CollectionConnection, err)
	}
	var settings models.ConnectionSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", storage.CollectionConnection, err)
	}
	return &settings, nil
}

func (s *Store) WriteConnection(ctx context.Context, settings models.ConnectionSettings) error {
	return s.writeCollection(ctx, storage.CollectionConnection, settings)
}

func (s *Store) readCollection(ctx context.Context, name string, dest any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeCollection(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO collections(name, data) VALUES(?, ?)
        ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`, name, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
