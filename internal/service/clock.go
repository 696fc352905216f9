package service

import (
	"time"

	"github.com/outreach-crm/outreach-api/internal/cadence"
)

// Clock returns the current instant. Services take one so tests can pin "today".
type Clock func() time.Time

// today returns the calendar date of now in loc, as UTC midnight
func today(clock Clock, loc *time.Location) time.Time {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return cadence.DateOf(clock().In(loc))
}
