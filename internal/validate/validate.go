// Package validate holds the pure field rules shared by every service
// operation. Each function either returns a normalized value or fails with a
// classified validation error; none of them touch storage.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
)

// Length ceilings count characters, not bytes.
const (
	// MaxTitleLen bounds task and sub-task titles.
	MaxTitleLen = 200
	// MaxDescriptionLen bounds the optional task description.
	MaxDescriptionLen = 2000
	// MaxBlockingReasonLen bounds the blocking reason free text.
	MaxBlockingReasonLen = 1000
	// MaxUpdateContentLen bounds daily update content.
	MaxUpdateContentLen = 1000
	// MaxMemberNameLen bounds a team member's display name.
	MaxMemberNameLen = 100
	// EditWindow is how long a daily update stays editable after creation.
	EditWindow = 24 * time.Hour
)

var (
	gearIDPattern = regexp.MustCompile(`^\d{4}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RequiredText trims value, then rejects empty results, then enforces maxLen
// on the trimmed text. The order matters for inputs that are padding around
// an over-long string.
func RequiredText(value string, maxLen int, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Validation("%s must not be empty", field)
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", apperr.Validation("%s must be at most %d characters", field, maxLen)
	}
	return trimmed, nil
}

// OptionalText trims value and normalizes an empty result to the empty
// string, enforcing maxLen on the trimmed text.
func OptionalText(value string, maxLen int, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", apperr.Validation("%s must be at most %d characters", field, maxLen)
	}
	return trimmed, nil
}

// GearID accepts an absent (empty) gear id or exactly four decimal digits.
func GearID(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if !gearIDPattern.MatchString(value) {
		return "", apperr.Validation("GEAR ID must be 4 digits")
	}
	return value, nil
}

// UpdateContent trims daily update content and enforces the 1..1000 range.
func UpdateContent(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxUpdateContentLen {
		return "", apperr.Validation("Update content must be between 1 and %d characters", MaxUpdateContentLen)
	}
	return trimmed, nil
}

// WithinEditWindow reports whether a daily update created at createdAt may
// still be edited or deleted at now. The window is strict: exactly 24 hours
// elapsed is already outside it.
func WithinEditWindow(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < EditWindow
}

// Email trims and checks the rough shape of an e-mail address.
func Email(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !emailPattern.MatchString(trimmed) {
		return "", apperr.Validation("email is not a valid email address")
	}
	return trimmed, nil
}

// Connection normalizes and checks a connection settings payload: all text
// fields non-empty after trimming and at most 255 characters, port in the
// valid TCP range.
func Connection(settings models.ConnectionSettings) (models.ConnectionSettings, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"host", &settings.Host},
		{"database", &settings.Database},
		{"username", &settings.Username},
		{"password", &settings.Password},
	}
	for _, f := range fields {
		normalized, err := RequiredText(*f.value, 255, f.label)
		if err != nil {
			return models.ConnectionSettings{}, err
		}
		*f.value = normalized
	}
	if settings.Port < 1 || settings.Port > 65535 {
		return models.ConnectionSettings{}, apperr.Validation("port must be between 1 and 65535")
	}
	return settings, nil
}

// Status rejects unknown workflow states.
func Status(s models.Status) error {
	if !s.Valid() {
		return apperr.Validation("invalid status %q", string(s))
	}
	return nil
}

// Priority rejects unknown urgency levels.
func Priority(p models.Priority) error {
	if !p.Valid() {
		return apperr.Validation("invalid priority %q", string(p))
	}
	return nil
}

// NotNull guards PATCH fields that may be omitted but never explicitly null.
func NotNull(set, valid bool, field string) error {
	if set && !valid {
		return apperr.Validation("%s cannot be null", field)
	}
	return nil
}
