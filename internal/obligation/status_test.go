package obligation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/payplanhq/payplan/internal/obligation"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name  string
		paid  int64
		total int64
		due   *time.Time
		want  obligation.Status
	}

	tests := []testCase{
		{name: "UnpaidNoDue", paid: 0, total: 50000, due: nil, want: obligation.StatusPending},
		{name: "UnpaidFutureDue", paid: 0, total: 50000, due: &future, want: obligation.StatusPending},
		{name: "UnpaidDueToday", paid: 0, total: 50000, due: &today, want: obligation.StatusPending},
		{name: "UnpaidPastDue", paid: 0, total: 50000, due: &past, want: obligation.StatusOverdue},
		{name: "PartialNoDue", paid: 100, total: 50000, due: nil, want: obligation.StatusPartial},
		{name: "PartialFutureDue", paid: 100, total: 50000, due: &future, want: obligation.StatusPartial},
		{name: "PartialPastDue", paid: 100, total: 50000, due: &past, want: obligation.StatusOverdue},
		{name: "FullyPaid", paid: 50000, total: 50000, due: &future, want: obligation.StatusPaid},
		{name: "PaidBeatsOverdue", paid: 50000, total: 50000, due: &past, want: obligation.StatusPaid},
		{name: "OverpaidPastDue", paid: 60000, total: 50000, due: &past, want: obligation.StatusPaid},
		{name: "ZeroTotal", paid: 0, total: 0, due: nil, want: obligation.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := obligation.DeriveStatus(tt.paid, tt.total, tt.due, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Raising the total after full settlement moves the obligation back to
// partial under the same derivation rule.
func TestDeriveStatus_TotalCorrection(t *testing.T) {
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, obligation.StatusPaid, obligation.DeriveStatus(50000, 50000, nil, today))
	assert.Equal(t, obligation.StatusPartial, obligation.DeriveStatus(50000, 80000, nil, today))
}

// Due-date comparison is by calendar day; a due date earlier today is
// not yet overdue.
func TestDeriveStatus_SameDayDue(t *testing.T) {
	due := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	today := time.Date(2026, 6, 15, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, obligation.StatusPending, obligation.DeriveStatus(0, 1000, &due, today))
}
