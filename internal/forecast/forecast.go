// Package forecast projects future cash outflows by aggregating budget
// items, schedule entries, open obligations and settled payment records
// into per-month buckets. Project is pure: it performs no reads or
// writes and identical inputs always produce identical output.
package forecast

import (
	"time"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/budget"
	"github.com/payplanhq/payplan/internal/obligation"
	"github.com/payplanhq/payplan/internal/schedule"
)

// Category names a bucket subtotal. Consumers pick which categories to
// sum; every subtotal stays independently exposed.
type Category string

const (
	CategoryBudget    Category = "budget"
	CategoryScheduled Category = "scheduled"
	CategoryEstimated Category = "estimated"
	CategoryRecurring Category = "recurring"
	// CategoryPaid holds settlements dated in their obligation's own
	// due month; CategoryCarriedOver holds late ones.
	CategoryPaid        Category = "paid"
	CategoryCarriedOver Category = "carried_over"
)

// LineItem traces one contribution to a bucket category back to its
// source record.
type LineItem struct {
	SourceID uuid.UUID
	Name     string
	Amount   int64
}

// MonthBucket is the projection for one calendar month.
type MonthBucket struct {
	Year      int
	Month     time.Month
	Subtotals map[Category]int64
	Items     map[Category][]LineItem
}

// Key returns the bucket's month key as YYYY-MM.
func (b *MonthBucket) Key() string {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Total sums the requested categories; all of them when none are given.
func (b *MonthBucket) Total(categories ...Category) int64 {
	if len(categories) == 0 {
		categories = []Category{
			CategoryBudget, CategoryScheduled, CategoryEstimated,
			CategoryRecurring, CategoryPaid, CategoryCarriedOver,
		}
	}

	var total int64
	for _, c := range categories {
		total += b.Subtotals[c]
	}

	return total
}

func (b *MonthBucket) add(c Category, item LineItem) {
	b.Subtotals[c] += item.Amount
	b.Items[c] = append(b.Items[c], item)
}

// Input is a point-in-time snapshot of the four projection sources.
type Input struct {
	Obligations     []*obligation.Obligation
	BudgetItems     []*budget.Item
	ScheduleEntries []*schedule.Entry
	PaymentRecords  []*obligation.PaymentRecord
	Today           time.Time
	MonthsAhead     int
}

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

// Project builds one bucket per month, starting with Today's month.
func Project(in Input) []*MonthBucket {
	if in.MonthsAhead < 1 {
		return nil
	}

	buckets := make([]*MonthBucket, in.MonthsAhead)
	index := make(map[monthKey]*MonthBucket, in.MonthsAhead)

	first := time.Date(in.Today.Year(), in.Today.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		b := &MonthBucket{
			Year:      m.Year(),
			Month:     m.Month(),
			Subtotals: make(map[Category]int64),
			Items:     make(map[Category][]LineItem),
		}
		buckets[i] = b
		index[monthKey{year: b.Year, month: b.Month}] = b
	}

	projectBudget(in, index)
	projectScheduled(in, index)
	projectOutstanding(in, index)
	projectSettled(in, index)

	return buckets
}

// projectBudget replicates each non-converted item's own payment
// pattern and drops every generated period into its month.
func projectBudget(in Input, index map[monthKey]*MonthBucket) {
	for _, item := range in.BudgetItems {
		if item.IsConverted {
			continue
		}

		for _, p := range budgetPeriods(item) {
			b, ok := index[keyOf(p.DueDate)]
			if !ok {
				continue
			}

			b.add(CategoryBudget, LineItem{SourceID: item.ID, Name: item.Name, Amount: p.Amount})
		}
	}
}

// budgetPeriods expands a budget item into dated amounts using the same
// splitting rules as real installment obligations.
func budgetPeriods(item *budget.Item) []obligation.Period {
	switch item.PaymentType {
	case budget.TypeMonthly:
		periods := make([]obligation.Period, 0, item.MonthCount)
		for i := 0; i < item.MonthCount; i++ {
			periods = append(periods, obligation.Period{
				Period:  i + 1,
				DueDate: obligation.AddMonths(item.StartDate, i),
				Amount:  item.MonthlyAmount,
			})
		}

		return periods
	case budget.TypeInstallment:
		periods, err := obligation.SplitInstallments(item.PlannedAmount, item.InstallmentCount, item.StartDate)
		if err != nil {
			return nil
		}

		return periods
	default:
		return []obligation.Period{{Period: 1, DueDate: item.StartDate, Amount: item.PlannedAmount}}
	}
}

func projectScheduled(in Input, index map[monthKey]*MonthBucket) {
	for _, e := range in.ScheduleEntries {
		if e.Status == schedule.StatusCompleted || e.Status == schedule.StatusSuperseded {
			continue
		}

		b, ok := index[keyOf(e.ScheduledDate)]
		if !ok {
			continue
		}

		b.add(CategoryScheduled, LineItem{SourceID: e.ID, Name: e.Notes, Amount: e.ScheduledAmount})
	}
}

// projectOutstanding attributes each unpaid obligation's remaining
// balance to its relevant month: recurring obligations under
// "recurring", everything else under "estimated".
func projectOutstanding(in Input, index map[monthKey]*MonthBucket) {
	for _, o := range in.Obligations {
		if o.DeletedAt != nil || o.Status == obligation.StatusPaid {
			continue
		}

		b, ok := index[keyOf(relevantDate(o))]
		if !ok {
			continue
		}

		category := CategoryEstimated
		if o.PaymentType == obligation.TypeRecurring {
			category = CategoryRecurring
		}

		b.add(category, LineItem{SourceID: o.ID, Name: o.Name, Amount: o.Remaining()})
	}
}

// relevantDate picks the month an open obligation is expected to be
// settled in: the explicit due date when present, else the end date,
// else the start date.
func relevantDate(o *obligation.Obligation) time.Time {
	if o.DueDate != nil {
		return *o.DueDate
	}

	if o.EndDate != nil {
		return *o.EndDate
	}

	return o.StartDate
}

// projectSettled splits payment records between on-time and carried
// over by comparing the payment month to the obligation's own due
// month. Payments without a due date to be late against count as paid
// in their own month.
func projectSettled(in Input, index map[monthKey]*MonthBucket) {
	dueByObligation := make(map[uuid.UUID]*time.Time, len(in.Obligations))
	nameByObligation := make(map[uuid.UUID]string, len(in.Obligations))

	for _, o := range in.Obligations {
		dueByObligation[o.ID] = o.DueDate
		nameByObligation[o.ID] = o.Name
	}

	for _, r := range in.PaymentRecords {
		b, ok := index[keyOf(r.PaymentDate)]
		if !ok {
			continue
		}

		category := CategoryPaid

		if due := dueByObligation[r.ObligationID]; due != nil && monthAfter(r.PaymentDate, *due) {
			category = CategoryCarriedOver
		}

		b.add(category, LineItem{
			SourceID: r.ID,
			Name:     nameByObligation[r.ObligationID],
			Amount:   r.AmountPaid,
		})
	}
}

// monthAfter reports whether a's calendar month is strictly after b's.
func monthAfter(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() > b.Year()
	}

	return a.Month() > b.Month()
}
