// Package postgres is the networked persistence adapter. It keeps the same
// collection-document layout as the sqlite adapter and additionally backs
// the connection-settings reachability probe.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"taskflow/internal/config"
	"taskflow/internal/models"
	"taskflow/internal/storage"
)

// Store wraps access to the Postgres database.
type Store struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

var _ storage.Store = (*Store)(nil)

// Open connects to Postgres, verifies the connection and runs the required
// migration.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := sqlx.ConnectContext(ctx, "postgres",
		dsn(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{"host": cfg.Host, "database": cfg.DBName}).Info("postgres store ready")
	return s, nil
}

// TestConnection probes the database described by settings and reports the
// first failure. Nothing is created or written; a reachable server with
// valid credentials is enough to succeed.
func TestConnection(ctx context.Context, settings models.ConnectionSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres",
		dsn(settings.Host, settings.Port, settings.Username, settings.Password, settings.Database, "disable"))
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

func dsn(host string, port int, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS collections (
        name TEXT PRIMARY KEY,
        data JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
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
	var settings models.ConnectionSettings
	found, err := s.readCollectionRow(ctx, storage.CollectionConnection, &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) WriteConnection(ctx context.Context, settings models.ConnectionSettings) error {
	return s.writeCollection(ctx, storage.CollectionConnection, settings)
}

func (s *Store) readCollection(ctx context.Context, name string, dest any) error {
	_, err := s.readCollectionRow(ctx, name, dest)
	return err
}

func (s *Store) readCollectionRow(ctx context.Context, name string, dest any) (bool, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT data FROM collections WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) writeCollection(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO collections(name, data) VALUES($1, $2)
        ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = now()`, name, raw)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
