package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/payplanhq/payplan/internal/budget"
	"github.com/payplanhq/payplan/internal/obligation"
	"github.com/payplanhq/payplan/internal/schedule"
)

// Service loads the four projection sources and hands them to the pure
// Project function. It performs no writes.
type Service struct {
	obligations *obligation.Service
	budgets     *budget.Service
	schedules   *schedule.Service
	records     RecordSource
	now         func() time.Time
}

// RecordSource supplies every payment record for temporal attribution.
// Satisfied by the obligation service's repository-backed listing.
type RecordSource interface {
	ListAllRecords(ctx context.Context) ([]*obligation.PaymentRecord, error)
}

func NewService(obligations *obligation.Service, budgets *budget.Service, schedules *schedule.Service, records RecordSource) *Service {
	return &Service{
		obligations: obligations,
		budgets:     budgets,
		schedules:   schedules,
		records:     records,
		now:         time.Now,
	}
}

// WithClock overrides the time source, for deterministic tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Project snapshots current state and projects monthsAhead months
// starting with the current one.
func (s *Service) Project(ctx context.Context, monthsAhead int) ([]*MonthBucket, error) {
	if monthsAhead < 1 {
		return nil, fmt.Errorf("%w: monthsAhead must be at least 1", obligation.ErrInvalidArgument)
	}

	obligations, err := s.obligations.List(ctx, obligation.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading obligations: %w", err)
	}

	items, err := s.budgets.List(ctx, budget.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading budget items: %w", err)
	}

	today := s.now()

	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, monthsAhead, 0).Add(-time.Nanosecond)

	entries, err := s.schedules.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading schedule entries: %w", err)
	}

	records, err := s.records.ListAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading payment records: %w", err)
	}

	return Project(Input{
		Obligations:     obligations,
		BudgetItems:     items,
		ScheduleEntries: entries,
		PaymentRecords:  records,
		Today:           today,
		MonthsAhead:     monthsAhead,
	}), nil
}
