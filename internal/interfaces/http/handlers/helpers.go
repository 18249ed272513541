package handlers

import (
	"strings"
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseOptionalTime accepts RFC 3339, datetime-local or a bare date. Nil
// and blank values yield nil.
func parseOptionalTime(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.NewValidationError("bad_date", field+" is not a valid date")
}
