package obligation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payplanhq/payplan/internal/obligation"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSplitInstallments(t *testing.T) {
	periods, err := obligation.SplitInstallments(100000, 3, date(2026, time.January, 15))
	require.NoError(t, err)
	require.Len(t, periods, 3)

	assert.Equal(t, obligation.Period{Period: 1, DueDate: date(2026, time.January, 15), Amount: 33334}, periods[0])
	assert.Equal(t, obligation.Period{Period: 2, DueDate: date(2026, time.February, 15), Amount: 33333}, periods[1])
	assert.Equal(t, obligation.Period{Period: 3, DueDate: date(2026, time.March, 15), Amount: 33333}, periods[2])
}

func TestSplitInstallments_SumsExactly(t *testing.T) {
	type testCase struct {
		name    string
		total   int64
		periods int
	}

	tests := []testCase{
		{name: "EvenSplit", total: 90000, periods: 3},
		{name: "RemainderOne", total: 100, periods: 3},
		{name: "RemainderMax", total: 100, periods: 101},
		{name: "SinglePeriod", total: 55555, periods: 1},
		{name: "ZeroTotal", total: 0, periods: 4},
		{name: "LargeOddTotal", total: 999999999, periods: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods, err := obligation.SplitInstallments(tt.total, tt.periods, date(2026, time.April, 1))
			require.NoError(t, err)
			require.Len(t, periods, tt.periods)

			var sum int64
			for _, p := range periods {
				sum += p.Amount
			}

			assert.Equal(t, tt.total, sum)

			// Only the first period carries the remainder.
			for i := 1; i < len(periods); i++ {
				assert.Equal(t, periods[1].Amount, periods[i].Amount)
			}

			assert.GreaterOrEqual(t, periods[0].Amount, periods[len(periods)-1].Amount)
		})
	}
}

func TestSplitInstallments_InvalidInput(t *testing.T) {
	_, err := obligation.SplitInstallments(1000, 0, date(2026, time.January, 1))
	assert.ErrorIs(t, err, obligation.ErrInvalidArgument)

	_, err = obligation.SplitInstallments(1000, -3, date(2026, time.January, 1))
	assert.ErrorIs(t, err, obligation.ErrInvalidArgument)

	_, err = obligation.SplitInstallments(-1, 2, date(2026, time.January, 1))
	assert.ErrorIs(t, err, obligation.ErrInvalidArgument)
}

func TestSplitInstallments_MonthEndClamping(t *testing.T) {
	periods, err := obligation.SplitInstallments(120000, 4, date(2026, time.January, 31))
	require.NoError(t, err)

	assert.Equal(t, date(2026, time.January, 31), periods[0].DueDate)
	assert.Equal(t, date(2026, time.February, 28), periods[1].DueDate)
	assert.Equal(t, date(2026, time.March, 31), periods[2].DueDate)
	assert.Equal(t, date(2026, time.April, 30), periods[3].DueDate)
}

func TestAddMonths(t *testing.T) {
	type testCase struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}

	tests := []testCase{
		{name: "PlainStep", start: date(2026, time.March, 10), n: 1, want: date(2026, time.April, 10)},
		{name: "ClampFebruary", start: date(2026, time.January, 31), n: 1, want: date(2026, time.February, 28)},
		{name: "ClampLeapFebruary", start: date(2028, time.January, 31), n: 1, want: date(2028, time.February, 29)},
		{name: "ThirtyFirstIntoThirtyDayMonth", start: date(2026, time.March, 31), n: 1, want: date(2026, time.April, 30)},
		{name: "YearRollover", start: date(2026, time.November, 15), n: 3, want: date(2027, time.February, 15)},
		{name: "ZeroMonths", start: date(2026, time.May, 20), n: 0, want: date(2026, time.May, 20)},
		{name: "ManyMonths", start: date(2026, time.January, 30), n: 13, want: date(2027, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, obligation.AddMonths(tt.start, tt.n))
		})
	}
}
