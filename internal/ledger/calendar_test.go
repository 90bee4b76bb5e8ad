package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		n      int
		policy DayOverflowPolicy
		want   time.Time
		ok     bool
	}{
		{"same month", date(2024, 1, 15), 0, DayOverflowSkip, date(2024, 1, 15), true},
		{"plain step", date(2024, 1, 15), 2, DayOverflowSkip, date(2024, 3, 15), true},
		{"year rollover", date(2024, 11, 10), 3, DayOverflowSkip, date(2025, 2, 10), true},
		{"31st into february skipped", date(2024, 1, 31), 1, DayOverflowSkip, time.Time{}, false},
		{"31st into february clamped", date(2024, 1, 31), 1, DayOverflowClamp, date(2024, 2, 29), true},
		{"31st into march", date(2024, 1, 31), 2, DayOverflowSkip, date(2024, 3, 31), true},
		{"29th non leap year", date(2024, 2, 29), 12, DayOverflowSkip, time.Time{}, false},
		{"29th non leap year clamped", date(2024, 2, 29), 12, DayOverflowClamp, date(2025, 2, 28), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddMonths(tt.start, tt.n, tt.policy)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestParseDayOverflowPolicy(t *testing.T) {
	p, err := ParseDayOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DayOverflowSkip, p)

	p, err = ParseDayOverflowPolicy("clamp")
	require.NoError(t, err)
	assert.Equal(t, DayOverflowClamp, p)

	_, err = ParseDayOverflowPolicy("rollover")
	assert.Error(t, err)
}

func TestMonthHelpers(t *testing.T) {
	from, to := MonthBounds(2024, time.December)
	assert.Equal(t, date(2024, 12, 1), from)
	assert.Equal(t, date(2025, 1, 1), to)

	assert.Equal(t, 14, MonthsBetween(date(2023, 11, 30), date(2025, 1, 1)))
	assert.True(t, SameMonth(date(2024, 5, 1), date(2024, 5, 31)))
	assert.False(t, SameMonth(date(2024, 5, 1), date(2023, 5, 1)))

	loc := time.FixedZone("UTC-3", -3*60*60)
	assert.Equal(t, date(2024, 3, 9), DateOf(time.Date(2024, 3, 9, 22, 30, 0, 0, loc)))
}
