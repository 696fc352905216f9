package cadence

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCadenceDays applies when an assignment carries no usable cadence.
	DefaultCadenceDays = 10
	// MinCadenceDays and MaxCadenceDays bound cadence values accepted from users.
	MinCadenceDays = 1
	MaxCadenceDays = 90
)

// Outreach is the most recent prior touch on a contact.
type Outreach struct {
	Date   time.Time
	Method string
}

// Input is one contact fed to the engine. Callers pass only contacts tied to
// prospect opportunities.
type Input struct {
	ContactID    uuid.UUID
	AccountName  string
	CadenceDays  int
	LastOutreach *Outreach // nil when the contact was never reached
}

// Status is the computed due state of one contact.
type Status struct {
	ContactID        uuid.UUID
	AccountName      string
	CadenceDays      int
	LastOutreach     *Outreach
	DueDate          time.Time
	DaysSinceContact *int // calendar days; nil when never contacted
	DaysOverdue      int  // business days past DueDate
	IsRollover       bool
	NeverContacted   bool
}

// DueOn reports whether the contact is actionable on today.
func (s Status) DueOn(today time.Time) bool {
	return !s.DueDate.After(DateOf(today))
}

// Result is the engine output for one reference date.
type Result struct {
	Today              time.Time
	IsBusinessDayToday bool
	NextBusinessDay    time.Time
	DueToday           []Status
	DueNextBusinessDay []Status
}

// NormalizeCadence maps a stored cadence to the value used for scheduling.
// Missing or non-positive values fall back to DefaultCadenceDays and values
// above MaxCadenceDays are capped.
func NormalizeCadence(days int) int {
	switch {
	case days < MinCadenceDays:
		return DefaultCadenceDays
	case days > MaxCadenceDays:
		return MaxCadenceDays
	default:
		return days
	}
}

// ClampCadence bounds a user-supplied cadence to [MinCadenceDays, MaxCadenceDays].
// A nil value yields DefaultCadenceDays.
func ClampCadence(days *int) int {
	if days == nil {
		return DefaultCadenceDays
	}
	switch {
	case *days < MinCadenceDays:
		return MinCadenceDays
	case *days > MaxCadenceDays:
		return MaxCadenceDays
	default:
		return *days
	}
}

// Evaluate computes the due status of a single contact relative to today.
func Evaluate(today time.Time, in Input) Status {
	today = DateOf(today)
	cadenceDays := NormalizeCadence(in.CadenceDays)

	status := Status{
		ContactID:   in.ContactID,
		AccountName: in.AccountName,
		CadenceDays: cadenceDays,
	}

	if in.LastOutreach == nil || in.LastOutreach.Date.IsZero() {
		status.NeverContacted = true
		if IsBusinessDay(today) {
			status.DueDate = today
		} else {
			status.DueDate = NextBusinessDay(today)
		}
	} else {
		last := DateOf(in.LastOutreach.Date)
		status.LastOutreach = &Outreach{Date: last, Method: in.LastOutreach.Method}
		status.DueDate = AddBusinessDays(last, cadenceDays)

		since := calendarDaysBetween(last, today)
		if since < 0 {
			since = 0
		}
		status.DaysSinceContact = &since
	}

	status.DaysOverdue = CountBusinessDays(status.DueDate, today)
	status.IsRollover = status.DueDate.Before(today) && IsBusinessDay(today)

	return status
}

// Compute evaluates every input against today and partitions the contacts into
// the due-today list and the next-business-day preview. The inputs slice is not
// modified and repeated calls with equal arguments return equal results.
func Compute(today time.Time, inputs []Input) Result {
	today = DateOf(today)
	nextDay := NextBusinessDay(today)

	result := Result{
		Today:              today,
		IsBusinessDayToday: IsBusinessDay(today),
		NextBusinessDay:    nextDay,
		DueToday:           []Status{},
		DueNextBusinessDay: []Status{},
	}

	for _, in := range inputs {
		status := Evaluate(today, in)
		switch {
		case status.DueOn(today):
			result.DueToday = append(result.DueToday, status)
		case status.DueDate.Equal(nextDay):
			result.DueNextBusinessDay = append(result.DueNextBusinessDay, status)
		}
	}

	sortDueToday(result.DueToday)
	sortByAccount(result.DueNextBusinessDay)

	return result
}

// sortDueToday orders rollovers first, then by days overdue descending, then
// by account name.
func sortDueToday(items []Status) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsRollover != b.IsRollover {
			return a.IsRollover
		}
		if a.DaysOverdue != b.DaysOverdue {
			return a.DaysOverdue > b.DaysOverdue
		}
		return accountLess(a, b)
	})
}

func sortByAccount(items []Status) {
	sort.SliceStable(items, func(i, j int) bool {
		return accountLess(items[i], items[j])
	})
}

// accountLess compares account names case-insensitively and falls back to the
// contact id so that ordering never depends on input order.
func accountLess(a, b Status) bool {
	an, bn := strings.ToLower(a.AccountName), strings.ToLower(b.AccountName)
	if an != bn {
		return an < bn
	}
	return a.ContactID.String() < b.ContactID.String()
}
