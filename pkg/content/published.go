package content

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParsePublished parses a free-form date as found in feed documents.
// Returns nil for empty or unparseable input, never an error.
func ParsePublished(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	ts, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}
