package models

import (
	"time"
)

// utc sets the location of a timestamp read from the database to UTC.
// Timestamps are written in UTC but the driver hands them back with a
// fixed +0000 zone.
func utc(t *time.Time) {
	if t == nil || t.IsZero() {
		return
	}
	*t = t.In(time.UTC)
}

