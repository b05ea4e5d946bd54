package forecast_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payplanhq/payplan/internal/budget"
	"github.com/payplanhq/payplan/internal/forecast"
	"github.com/payplanhq/payplan/internal/obligation"
	"github.com/payplanhq/payplan/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProject_MonthlyBudgetItem(t *testing.T) {
	in := forecast.Input{
		BudgetItems: []*budget.Item{
			{
				ID:            uuid.New(),
				Name:          "Cleaning service",
				PaymentType:   budget.TypeMonthly,
				MonthlyAmount: 5000,
				MonthCount:    3,
				StartDate:     date(2026, time.March, 1),
			},
		},
		Today:       date(2026, time.March, 10),
		MonthsAhead: 4,
	}

	buckets := forecast.Project(in)
	require.Len(t, buckets, 4)

	assert.Equal(t, "2026-03", buckets[0].Key())
	assert.Equal(t, int64(5000), buckets[0].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(5000), buckets[1].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(5000), buckets[2].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(0), buckets[3].Subtotals[forecast.CategoryBudget])
}

func TestProject_ConvertedBudgetItemExcluded(t *testing.T) {
	in := forecast.Input{
		BudgetItems: []*budget.Item{
			{
				ID:            uuid.New(),
				Name:          "Materialized already",
				PaymentType:   budget.TypeSingle,
				PlannedAmount: 70000,
				StartDate:     date(2026, time.March, 5),
				IsConverted:   true,
			},
		},
		Today:       date(2026, time.March, 1),
		MonthsAhead: 2,
	}

	buckets := forecast.Project(in)

	assert.Equal(t, int64(0), buckets[0].Subtotals[forecast.CategoryBudget])
	assert.Empty(t, buckets[0].Items[forecast.CategoryBudget])
}

// Installment budget items reuse the splitter, so the remainder lands
// in the first projected month.
func TestProject_InstallmentBudgetItem(t *testing.T) {
	in := forecast.Input{
		BudgetItems: []*budget.Item{
			{
				ID:               uuid.New(),
				Name:             "New server",
				PaymentType:      budget.TypeInstallment,
				PlannedAmount:    100000,
				InstallmentCount: 3,
				StartDate:        date(2026, time.April, 15),
			},
		},
		Today:       date(2026, time.April, 1),
		MonthsAhead: 4,
	}

	buckets := forecast.Project(in)

	assert.Equal(t, int64(33334), buckets[0].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(33333), buckets[1].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(33333), buckets[2].Subtotals[forecast.CategoryBudget])
	assert.Equal(t, int64(0), buckets[3].Subtotals[forecast.CategoryBudget])
}

func TestProject_ScheduledEntries(t *testing.T) {
	in := forecast.Input{
		ScheduleEntries: []*schedule.Entry{
			{ID: uuid.New(), ScheduledDate: date(2026, time.June, 10), ScheduledAmount: 10000, Status: schedule.StatusPending},
			{ID: uuid.New(), ScheduledDate: date(2026, time.June, 20), ScheduledAmount: 99999, Status: schedule.StatusCompleted},
			{ID: uuid.New(), ScheduledDate: date(2026, time.June, 20), ScheduledAmount: 88888, Status: schedule.StatusSuperseded},
			{ID: uuid.New(), ScheduledDate: date(2026, time.July, 1), ScheduledAmount: 7000, Status: schedule.StatusPending},
		},
		Today:       date(2026, time.June, 1),
		MonthsAhead: 2,
	}

	buckets := forecast.Project(in)

	assert.Equal(t, int64(10000), buckets[0].Subtotals[forecast.CategoryScheduled])
	assert.Equal(t, int64(7000), buckets[1].Subtotals[forecast.CategoryScheduled])
}

func TestProject_OutstandingObligations(t *testing.T) {
	junDue := date(2026, time.June, 25)
	deleted := date(2026, time.May, 1)

	in := forecast.Input{
		Obligations: []*obligation.Obligation{
			{
				ID:          uuid.New(),
				Name:        "Office rent",
				TotalAmount: 90000,
				PaidAmount:  0,
				Status:      obligation.StatusPending,
				PaymentType: obligation.TypeRecurring,
				StartDate:   date(2026, time.June, 1),
				DueDate:     &junDue,
			},
			{
				ID:          uuid.New(),
				Name:        "Repair invoice",
				TotalAmount: 40000,
				PaidAmount:  15000,
				Status:      obligation.StatusPartial,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.June, 5),
			},
			{
				ID:          uuid.New(),
				Name:        "Already settled",
				TotalAmount: 100,
				PaidAmount:  100,
				Status:      obligation.StatusPaid,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.June, 5),
			},
			{
				ID:          uuid.New(),
				Name:        "Soft deleted",
				TotalAmount: 5555,
				Status:      obligation.StatusPending,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.June, 5),
				DeletedAt:   &deleted,
			},
		},
		Today:       date(2026, time.June, 1),
		MonthsAhead: 1,
	}

	buckets := forecast.Project(in)

	// Recurring obligations land in "recurring", the rest in
	// "estimated", both at their remaining amount.
	assert.Equal(t, int64(90000), buckets[0].Subtotals[forecast.CategoryRecurring])
	assert.Equal(t, int64(25000), buckets[0].Subtotals[forecast.CategoryEstimated])
}

func TestProject_CarryOverAttribution(t *testing.T) {
	obligationID := uuid.New()
	mayDue := date(2026, time.May, 20)

	in := forecast.Input{
		Obligations: []*obligation.Obligation{
			{
				ID:          obligationID,
				Name:        "May invoice",
				TotalAmount: 30000,
				PaidAmount:  30000,
				Status:      obligation.StatusPaid,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.May, 1),
				DueDate:     &mayDue,
			},
		},
		PaymentRecords: []*obligation.PaymentRecord{
			// Settled one month late: attributed to June as carry-over,
			// never to May.
			{ID: uuid.New(), ObligationID: obligationID, AmountPaid: 30000, PaymentDate: date(2026, time.June, 3)},
		},
		Today:       date(2026, time.May, 1),
		MonthsAhead: 2,
	}

	buckets := forecast.Project(in)

	may, june := buckets[0], buckets[1]

	assert.Equal(t, int64(0), may.Subtotals[forecast.CategoryPaid])
	assert.Equal(t, int64(0), may.Subtotals[forecast.CategoryCarriedOver])
	assert.Equal(t, int64(0), june.Subtotals[forecast.CategoryPaid])
	assert.Equal(t, int64(30000), june.Subtotals[forecast.CategoryCarriedOver])

	require.Len(t, june.Items[forecast.CategoryCarriedOver], 1)
	assert.Equal(t, "May invoice", june.Items[forecast.CategoryCarriedOver][0].Name)
}

func TestProject_OnTimePayment(t *testing.T) {
	obligationID := uuid.New()
	junDue := date(2026, time.June, 20)

	in := forecast.Input{
		Obligations: []*obligation.Obligation{
			{
				ID:          obligationID,
				Name:        "June invoice",
				TotalAmount: 10000,
				PaidAmount:  10000,
				Status:      obligation.StatusPaid,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.June, 1),
				DueDate:     &junDue,
			},
		},
		PaymentRecords: []*obligation.PaymentRecord{
			{ID: uuid.New(), ObligationID: obligationID, AmountPaid: 10000, PaymentDate: date(2026, time.June, 18)},
		},
		Today:       date(2026, time.June, 1),
		MonthsAhead: 1,
	}

	buckets := forecast.Project(in)

	assert.Equal(t, int64(10000), buckets[0].Subtotals[forecast.CategoryPaid])
	assert.Equal(t, int64(0), buckets[0].Subtotals[forecast.CategoryCarriedOver])
}

// A payment against an obligation without a due date has nothing to be
// late against; it counts as paid in its own month.
func TestProject_PaymentWithoutDueDate(t *testing.T) {
	obligationID := uuid.New()

	in := forecast.Input{
		Obligations: []*obligation.Obligation{
			{
				ID:          obligationID,
				Name:        "Open-ended",
				TotalAmount: 5000,
				PaidAmount:  5000,
				Status:      obligation.StatusPaid,
				PaymentType: obligation.TypeSingle,
				StartDate:   date(2026, time.January, 1),
			},
		},
		PaymentRecords: []*obligation.PaymentRecord{
			{ID: uuid.New(), ObligationID: obligationID, AmountPaid: 5000, PaymentDate: date(2026, time.June, 2)},
		},
		Today:       date(2026, time.June, 1),
		MonthsAhead: 1,
	}

	buckets := forecast.Project(in)

	assert.Equal(t, int64(5000), buckets[0].Subtotals[forecast.CategoryPaid])
	assert.Equal(t, int64(0), buckets[0].Subtotals[forecast.CategoryCarriedOver])
}

func TestProject_Deterministic(t *testing.T) {
	obligationID := uuid.New()
	due := date(2026, time.July, 10)

	in := forecast.Input{
		Obligations: []*obligation.Obligation{
			{
				ID:          obligationID,
				Name:        "Lease",
				TotalAmount: 120000,
				PaidAmount:  40000,
				Status:      obligation.StatusPartial,
				PaymentType: obligation.TypeRecurring,
				StartDate:   date(2026, time.July, 1),
				DueDate:     &due,
			},
		},
		BudgetItems: []*budget.Item{
			{ID: uuid.New(), Name: "Paint job", PaymentType: budget.TypeSingle, PlannedAmount: 30000, StartDate: date(2026, time.August, 1)},
		},
		ScheduleEntries: []*schedule.Entry{
			{ID: uuid.New(), ScheduledDate: date(2026, time.July, 15), ScheduledAmount: 40000, Status: schedule.StatusPending},
		},
		PaymentRecords: []*obligation.PaymentRecord{
			{ID: uuid.New(), ObligationID: obligationID, AmountPaid: 40000, PaymentDate: date(2026, time.July, 2)},
		},
		Today:       date(2026, time.July, 1),
		MonthsAhead: 3,
	}

	first := forecast.Project(in)
	second := forecast.Project(in)

	assert.Equal(t, first, second)
}

func TestProject_BucketTotal(t *testing.T) {
	b := &forecast.MonthBucket{
		Year:  2026,
		Month: time.June,
		Subtotals: map[forecast.Category]int64{
			forecast.CategoryBudget:      100,
			forecast.CategoryScheduled:   200,
			forecast.CategoryEstimated:   400,
			forecast.CategoryRecurring:   800,
			forecast.CategoryPaid:        1600,
			forecast.CategoryCarriedOver: 3200,
		},
	}

	assert.Equal(t, int64(6300), b.Total())
	assert.Equal(t, int64(300), b.Total(forecast.CategoryBudget, forecast.CategoryScheduled))
	assert.Equal(t, int64(4800), b.Total(forecast.CategoryPaid, forecast.CategoryCarriedOver))
}

func TestProject_NoMonths(t *testing.T) {
	assert.Nil(t, forecast.Project(forecast.Input{Today: date(2026, time.June, 1), MonthsAhead: 0}))
}
