package obligation

import "time"

// DeriveStatus computes the lifecycle status from the underlying sums.
// Paid wins over overdue whenever paid covers total, regardless of the
// due date. Today is passed in explicitly so callers can replay a
// point in time.
func DeriveStatus(paid, total int64, due *time.Time, today time.Time) Status {
	if paid >= total {
		return StatusPaid
	}

	if due != nil && beforeDay(*due, today) {
		return StatusOverdue
	}

	if paid > 0 {
		return StatusPartial
	}

	return StatusPending
}

// beforeDay compares calendar days, ignoring time of day and zone
// offsets inside a day.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	if ay != by {
		return ay < by
	}

	if am != bm {
		return am < bm
	}

	return ad < bd
}
