package obligation

import (
	"fmt"
	"time"
)

// Period is one slice of a total split across installments.
type Period struct {
	Period  int
	DueDate time.Time
	Amount  int64
}

// SplitInstallments divides total cents across the given number of
// periods. Division truncates, and the full rounding remainder lands on
// the first period so the periods always re-sum to total exactly.
// Due dates step one calendar month per period from start, clamped to
// the last valid day of shorter months.
func SplitInstallments(total int64, periods int, start time.Time) ([]Period, error) {
	if periods < 1 {
		return nil, fmt.Errorf("%w: periods must be at least 1, got %d", ErrInvalidArgument, periods)
	}

	if total < 0 {
		return nil, fmt.Errorf("%w: total must not be negative, got %d", ErrInvalidArgument, total)
	}

	base := total / int64(periods)
	remainder := total - base*int64(periods)

	out := make([]Period, periods)
	for i := range out {
		amount := base
		if i == 0 {
			amount += remainder
		}

		out[i] = Period{
			Period:  i + 1,
			DueDate: AddMonths(start, i),
			Amount:  amount,
		}
	}

	return out, nil
}

// AddMonths advances t by n calendar months, clamping the day of month
// to the target month's length (Jan 31 + 1 month = Feb 28/29). This is
// not time.Time.AddDate, which rolls overflow into the next month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	// Normalize via a first-of-month anchor, then clamp the day.
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)

	if last := daysIn(anchor.Year(), anchor.Month()); day > last {
		day = last
	}

	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
