package cache

import (
	"log/slog"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultTimezone is the reference timezone of the default theater's
// physical location. Every expiry decision is anchored here regardless of
// where the process runs.
const DefaultTimezone = "America/Maceio"

// Policy decides whether a cached batch is still valid "today". Both sides
// of the comparison use one timezone basis: "now" is computed in the
// reference zone, and stored fetch timestamps are converted into that same
// zone before their calendar date is read. Timestamps persist as RFC3339
// with offset, so the conversion is exact.
type Policy struct {
	Location *time.Location

	// Now is the wall clock, replaceable in tests
	Now func() time.Time
}

// NewPolicy builds a policy for a named timezone. An unknown name falls
// back to UTC with a warning rather than failing.
func NewPolicy(tzName string, logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", "timezone", tzName, "error", err)
		loc = time.UTC
	}
	return &Policy{Location: loc, Now: time.Now}
}

// Today returns the current calendar date in the reference timezone,
// shifted by offsetDays, formatted YYYY-MM-DD.
func (p *Policy) Today(offsetDays int) string {
	return p.Now().In(p.Location).AddDate(0, 0, offsetDays).Format(dateLayout)
}

// SameLocalDay reports whether fetchedAt falls on the current reference-
// timezone calendar day. A batch fetched before the last local midnight is
// stale no matter how recent it is in absolute terms.
func (p *Policy) SameLocalDay(fetchedAt time.Time) bool {
	return fetchedAt.In(p.Location).Format(dateLayout) == p.Today(0)
}
