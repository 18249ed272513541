// Package biztime holds the business timezone. Storage is UTC; the business
// zone is only used when rendering dates for people (emails, notices).
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "America/Mexico_City"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init sets the business timezone once. Empty tz selects the default.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, falling back to UTC when the zone
// database is unavailable.
func Location() *time.Location {
	if err := Init(""); err != nil || bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

var monthsES = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// FormatLong renders t like "3 de marzo de 2026, 14:05" in the business zone.
func FormatLong(t time.Time) string {
	lt := t.In(Location())
	return fmt.Sprintf("%d de %s de %d, %02d:%02d", lt.Day(), monthsES[lt.Month()-1], lt.Year(), lt.Hour(), lt.Minute())
}
