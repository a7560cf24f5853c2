package awards

import "time"

// dateOf strips the time of day, keeping the location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}

// BumpStreak returns the streak state after a completion on the given day.
// A second completion on the same day is a no-op, a completion on the day
// after the last active day extends the streak, and any gap restarts it at 1.
// Pure; the caller persists the returned state.
func BumpStreak(s UserStreak, day time.Time) UserStreak {
	today := dateOf(day)

	if s.LastActiveDay != nil && sameDay(*s.LastActiveDay, today) {
		return s
	}

	if s.LastActiveDay != nil && sameDay(s.LastActiveDay.AddDate(0, 0, 1), today) {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	s.LastActiveDay = &today
	return s
}

// StreakBroken reports whether a streak has lapsed: no activity yesterday or
// today means any running streak is over.
func StreakBroken(s UserStreak, now time.Time) bool {
	if s.CurrentStreak == 0 {
		return false
	}
	if s.LastActiveDay == nil {
		return true
	}
	today := dateOf(now)
	yesterday := today.AddDate(0, 0, -1)
	last := dateOf(*s.LastActiveDay)
	return last.Before(yesterday)
}
