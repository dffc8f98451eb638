// Package recurring materializes template transactions on their schedule.
package recurring

import (
	"time"

	"github.com/splitpot/backend/internal/types"
)

// A Checker decides whether a template transaction is due again.
//
// lastRun is the time the template was last materialized, the zero time
// when it never was. The anchor is the date of the template itself and
// pins the day of month for the longer intervals.
type Checker interface {
	IsDue(lastRun, now, anchor time.Time) bool
}

// Daily is due once per calendar day.
type Daily struct{}

func (Daily) IsDue(lastRun, now, _ time.Time) bool {
	if lastRun.IsZero() {
		return true
	}

	return lastRun.Format(time.DateOnly) != now.Format(time.DateOnly)
}

// Weekly is due again seven days after the last run.
type Weekly struct{}

func (Weekly) IsDue(lastRun, now, _ time.Time) bool {
	if lastRun.IsZero() {
		return true
	}

	return now.Sub(lastRun).Hours()/24 >= 7
}

// Monthly is due in every new month once the anchor day is reached.
// Anchor days a month does not have clamp to its last day, a template
// anchored on the 31st runs in February on the 28th.
type Monthly struct{}

func (Monthly) IsDue(lastRun, now, anchor time.Time) bool {
	if lastRun.IsZero() {
		return true
	}

	if lastRun.Year() == now.Year() && lastRun.Month() == now.Month() {
		return false
	}

	return now.Day() >= clampDay(anchor.Day(), now)
}

// Yearly is due in every new year once the anchor month and day are
// reached.
type Yearly struct{}

func (Yearly) IsDue(lastRun, now, anchor time.Time) bool {
	if lastRun.IsZero() {
		return true
	}

	if lastRun.Year() == now.Year() {
		return false
	}

	if now.Month() < anchor.Month() {
		return false
	}

	if now.Month() == anchor.Month() {
		return now.Day() >= clampDay(anchor.Day(), now)
	}

	return true
}

// clampDay caps a day of month to the last day of the month now is in.
func clampDay(day int, now time.Time) int {
	last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}

	return day
}

var checkers = map[types.Recurrence]Checker{
	types.RecurrenceDaily:   Daily{},
	types.RecurrenceWeekly:  Weekly{},
	types.RecurrenceMonthly: Monthly{},
	types.RecurrenceYearly:  Yearly{},
}

// CheckerFor returns the checker for a recurrence. The second return
// value is false for recurrences that never repeat.
func CheckerFor(recurrence types.Recurrence) (Checker, bool) {
	checker, ok := checkers[recurrence]
	return checker, ok
}
