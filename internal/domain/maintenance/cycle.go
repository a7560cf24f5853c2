package maintenance

import (
	"fmt"
	"time"
)

// Frequency is the recurrence period of a maintenance task.
type Frequency string

const (
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
)

// ParseFrequency converts a category string into a Frequency. Categories
// without a recurrence cycle (non-printing) are rejected, as is anything
// unrecognized.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// NextDue computes the next due date for a recurring task. The anchor is the
// last completion when one exists, otherwise the printer's purchase date. The
// period is added with calendar arithmetic, so day-of-month overflow carries
// into the following month (Jan 31 + 1 month lands in early March) rather
// than clamping to month end.
func NextDue(purchase time.Time, freq Frequency, lastCompleted *time.Time) time.Time {
	base := purchase
	if lastCompleted != nil {
		base = *lastCompleted
	}

	switch freq {
	case FreqDaily:
		return base.AddDate(0, 0, 1)
	case FreqWeekly:
		return base.AddDate(0, 0, 7)
	case FreqMonthly:
		return base.AddDate(0, 1, 0)
	case FreqQuarterly:
		return base.AddDate(0, 3, 0)
	case FreqYearly:
		return base.AddDate(1, 0, 0)
	}
	// Callers validate frequency before reaching here.
	return base
}

// IsDueAt reports whether the task is due as of now. The comparison is
// date-only: both sides are truncated to local midnight, so a task whose due
// instant falls earlier today counts as due from midnight onward.
func IsDueAt(purchase time.Time, freq Frequency, lastCompleted *time.Time, now time.Time) bool {
	due := startOfDay(NextDue(purchase, freq, lastCompleted))
	today := startOfDay(now)
	return !today.Before(due)
}

// IsDue is IsDueAt anchored at the current wall clock.
func IsDue(purchase time.Time, freq Frequency, lastCompleted *time.Time) bool {
	return IsDueAt(purchase, freq, lastCompleted, time.Now())
}

// ShouldResetAt reports whether a completed task has crossed its next cycle
// boundary and must flip back to incomplete. A never-completed task is never
// reset. Otherwise the predicate is identical to IsDueAt: once the next cycle
// arrives the task is due again and therefore shows as incomplete again.
func ShouldResetAt(purchase time.Time, freq Frequency, lastCompleted *time.Time, now time.Time) bool {
	if lastCompleted == nil {
		return false
	}
	return IsDueAt(purchase, freq, lastCompleted, now)
}

// ShouldReset is ShouldResetAt anchored at the current wall clock.
func ShouldReset(purchase time.Time, freq Frequency, lastCompleted *time.Time) bool {
	return ShouldResetAt(purchase, freq, lastCompleted, time.Now())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
