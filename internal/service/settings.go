package service

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/models"
	"taskflow/internal/validate"
)

// GetConnection returns the saved connection settings with the password
// blanked, or nil when none have been saved.
func (s *Service) GetConnection(ctx context.Context) (*models.ConnectionSettings, error) {
	settings, err := s.store.ReadConnection(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}
	redacted := *settings
	redacted.Password = ""
	return &redacted, nil
}

// SaveConnection validates and persists connection settings.
func (s *Service) SaveConnection(ctx context.Context, settings models.ConnectionSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := validate.Connection(settings)
	if err != nil {
		return err
	}
	if err := s.store.WriteConnection(ctx, normalized); err != nil {
		return err
	}

	s.logger.WithFields(map[string]any{
		"host":     normalized.Host,
		"port":     normalized.Port,
		"database": normalized.Database,
	}).Info("connection settings saved")
	return nil
}

// TestConnection probes the database described by settings without saving
// anything. The result message never contains the password.
func (s *Service) TestConnection(ctx context.Context, settings models.ConnectionSettings) (models.ConnectionTestResult, error) {
	normalized, err := validate.Connection(settings)
	if err != nil {
		return models.ConnectionTestResult{}, err
	}

	if err := s.probe(ctx, normalized); err != nil {
		return models.ConnectionTestResult{
			Success: false,
			Message: fmt.Sprintf("Connection failed: %s", redactSecret(err.Error(), normalized.Password)),
		}, nil
	}
	return models.ConnectionTestResult{
		Success: true,
		Message: fmt.Sprintf("Successfully connected to %s:%d/%s", normalized.Host, normalized.Port, normalized.Database),
	}, nil
}

// redactSecret masks every occurrence of secret inside msg. Driver errors
// sometimes echo the DSN back verbatim.
func redactSecret(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "********")
}
