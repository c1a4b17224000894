package timezone

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. Layouts without an offset are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

var location atomic.Pointer[time.Location]

// Init sets the application location. An empty or unknown name leaves it at UTC.
func Init(name string) {
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		loc = time.UTC
	}

	location.Store(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Location returns the application location, UTC until Init is called.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application location.
func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the application location.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// ParseDate accepts a calendar day (2006-01-02) or a timestamp, with or without an offset.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
