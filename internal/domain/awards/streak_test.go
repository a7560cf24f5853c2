package awards

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBumpStreak_FirstActivity(t *testing.T) {
	s := UserStreak{UserID: uuid.New()}

	got := BumpStreak(s, day(2024, time.May, 1))
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, day(2024, time.May, 1), *got.LastActiveDay)
}

func TestBumpStreak_SameDayIsNoOp(t *testing.T) {
	active := day(2024, time.May, 1)
	s := UserStreak{CurrentStreak: 3, LongestStreak: 5, LastActiveDay: &active}

	got := BumpStreak(s, time.Date(2024, time.May, 1, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 5, got.LongestStreak)
}

func TestBumpStreak_ConsecutiveDayExtends(t *testing.T) {
	active := day(2024, time.May, 1)
	s := UserStreak{CurrentStreak: 3, LongestStreak: 3, LastActiveDay: &active}

	got := BumpStreak(s, day(2024, time.May, 2))
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)
}

func TestBumpStreak_GapRestartsAtOne(t *testing.T) {
	active := day(2024, time.May, 1)
	s := UserStreak{CurrentStreak: 9, LongestStreak: 9, LastActiveDay: &active}

	got := BumpStreak(s, day(2024, time.May, 4))
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 9, got.LongestStreak, "longest streak survives the reset")
}

func TestBumpStreak_ReachesSevenDays(t *testing.T) {
	s := UserStreak{}
	for i := 0; i < 7; i++ {
		s = BumpStreak(s, day(2024, time.May, 1+i))
	}
	assert.Equal(t, 7, s.CurrentStreak)
}

func TestStreakBroken(t *testing.T) {
	now := day(2024, time.May, 10)

	tests := []struct {
		name       string
		streak     int
		lastActive *time.Time
		broken     bool
	}{
		{"no running streak", 0, nil, false},
		{"active today", 2, ptr(day(2024, time.May, 10)), false},
		{"active yesterday", 2, ptr(day(2024, time.May, 9)), false},
		{"two days idle", 2, ptr(day(2024, time.May, 8)), true},
		{"running streak without activity record", 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := UserStreak{CurrentStreak: tt.streak, LastActiveDay: tt.lastActive}
			assert.Equal(t, tt.broken, StreakBroken(s, now))
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
