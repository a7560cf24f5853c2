package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue_AnchorsToPurchaseWhenNeverCompleted(t *testing.T) {
	purchase := date(2024, time.March, 15)

	tests := []struct {
		freq     Frequency
		expected time.Time
	}{
		{FreqDaily, date(2024, time.March, 16)},
		{FreqWeekly, date(2024, time.March, 22)},
		{FreqMonthly, date(2024, time.April, 15)},
		{FreqQuarterly, date(2024, time.June, 15)},
		{FreqYearly, date(2025, time.March, 15)},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			got := NextDue(purchase, tt.freq, nil)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextDue_AnchorsToLastCompletion(t *testing.T) {
	purchase := date(2024, time.January, 1)
	last := date(2024, time.June, 10)

	got := NextDue(purchase, FreqWeekly, &last)
	assert.Equal(t, date(2024, time.June, 17), got)
}

func TestNextDue_MonthlyRollsOverInsteadOfClamping(t *testing.T) {
	// Jan 31 + 1 month overflows past February into early March.
	purchase := date(2024, time.January, 31)
	got := NextDue(purchase, FreqMonthly, nil)
	assert.Equal(t, date(2024, time.March, 2), got)
}

func TestNextDue_MonotoneInLastCompleted(t *testing.T) {
	purchase := date(2024, time.January, 1)
	freqs := []Frequency{FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly}

	for _, freq := range freqs {
		prev := NextDue(purchase, freq, nil)
		for day := 1; day <= 400; day += 13 {
			last := purchase.AddDate(0, 0, day)
			next := NextDue(purchase, freq, &last)
			assert.False(t, next.Before(prev), "freq %s: NextDue went backwards at +%d days", freq, day)
			prev = next
		}
	}
}

func TestIsDueAt_DateOnlyComparison(t *testing.T) {
	purchase := date(2024, time.January, 1)
	last := date(2024, time.January, 1)

	// Daily task completed Jan 1 is due again starting Jan 2.
	assert.False(t, IsDueAt(purchase, FreqDaily, &last, date(2024, time.January, 1)))
	assert.True(t, IsDueAt(purchase, FreqDaily, &last, date(2024, time.January, 2)))

	// A due instant earlier today counts as due regardless of time of day.
	lateEvening := time.Date(2024, time.January, 2, 23, 59, 0, 0, time.UTC)
	assert.True(t, IsDueAt(purchase, FreqDaily, &last, lateEvening))
	earlyMorning := time.Date(2024, time.January, 2, 0, 0, 1, 0, time.UTC)
	assert.True(t, IsDueAt(purchase, FreqDaily, &last, earlyMorning))
}

func TestIsDueAt_IdempotentForFixedNow(t *testing.T) {
	purchase := date(2024, time.January, 1)
	last := date(2024, time.January, 5)
	now := date(2024, time.January, 9)

	first := IsDueAt(purchase, FreqWeekly, &last, now)
	second := IsDueAt(purchase, FreqWeekly, &last, now)
	assert.Equal(t, first, second)
}

func TestShouldResetAt_NeverCompletedNeverResets(t *testing.T) {
	purchase := date(2020, time.January, 1)
	farFuture := date(2030, time.January, 1)

	for _, freq := range []Frequency{FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly} {
		assert.False(t, ShouldResetAt(purchase, freq, nil, farFuture), "freq %s", freq)
	}
}

func TestShouldResetAt_MatchesDuePredicate(t *testing.T) {
	purchase := date(2024, time.January, 1)
	last := date(2024, time.January, 1)

	assert.False(t, ShouldResetAt(purchase, FreqDaily, &last, date(2024, time.January, 1)))
	assert.True(t, ShouldResetAt(purchase, FreqDaily, &last, date(2024, time.January, 2)))
	assert.True(t, ShouldResetAt(purchase, FreqDaily, &last, date(2024, time.February, 1)))
}

func TestParseFrequency(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly", "quarterly", "yearly"} {
		freq, err := ParseFrequency(valid)
		require.NoError(t, err)
		assert.Equal(t, Frequency(valid), freq)
	}

	for _, invalid := range []string{"non-printing", "", "biweekly", "Daily"} {
		_, err := ParseFrequency(invalid)
		assert.ErrorIs(t, err, ErrInvalidFrequency, "input %q", invalid)
	}
}

func TestCategoryHasCycle(t *testing.T) {
	assert.True(t, CategoryDaily.HasCycle())
	assert.True(t, CategoryYearly.HasCycle())
	assert.False(t, CategoryNonPrinting.HasCycle())
}
