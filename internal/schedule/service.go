package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=schedule
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	// Supersede inserts the replacement and flips the original from
	// pending to superseded in one transaction. The flip is conditioned
	// on the original still being pending, so only one of two racing
	// reschedules can win; the loser gets ErrConcurrentModification.
	Supersede(ctx context.Context, originalID uuid.UUID, replacement *Entry) error
	// CompleteEntry moves a pending entry to completed; a non-pending
	// entry yields ErrConcurrentModification.
	CompleteEntry(ctx context.Context, id uuid.UUID) error
	CountOverdue(ctx context.Context, today time.Time) (int, error)
}

type ListFilter struct {
	ObligationID *uuid.UUID
	Status       *Status
	From         *time.Time
	To           *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ObligationID    uuid.UUID
	ScheduledDate   time.Time
	ScheduledAmount int64
	Notes           string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.ScheduledAmount <= 0 {
		return nil, fmt.Errorf("%w: scheduled amount must be positive", ErrInvalidArgument)
	}

	e := &Entry{
		ObligationID:    params.ObligationID,
		ScheduledDate:   params.ScheduledDate,
		ScheduledAmount: params.ScheduledAmount,
		Status:          StatusPending,
		Notes:           params.Notes,
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// ListMonth returns every entry scheduled inside the given month,
// regardless of state.
func (s *Service) ListMonth(ctx context.Context, year int, month time.Month) ([]*Entry, error) {
	from, to := monthBounds(year, month)

	return s.repo.ListEntries(ctx, ListFilter{From: &from, To: &to})
}

// ListRange returns entries scheduled between from and to inclusive.
func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListFilter{From: &from, To: &to})
}

func (s *Service) ListByObligation(ctx context.Context, obligationID uuid.UUID) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListFilter{ObligationID: &obligationID})
}

// Reschedule replaces the entry with a new one for newDate and marks
// the original superseded. The original is never mutated in place.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time, notes string) (*Entry, error) {
	original, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if original.Status != StatusPending {
		return nil, fmt.Errorf("%w: only pending entries can be rescheduled", ErrInvalidArgument)
	}

	replacement := &Entry{
		ObligationID:    original.ObligationID,
		ScheduledDate:   newDate,
		ScheduledAmount: original.ScheduledAmount,
		Status:          StatusPending,
		Notes:           notes,
	}

	if err := s.repo.Supersede(ctx, id, replacement); err != nil {
		return nil, err
	}

	return replacement, nil
}

// CompleteMatching settles the oldest pending entry for the obligation
// whose amount matches the payment, if any. No-op when nothing matches.
func (s *Service) CompleteMatching(ctx context.Context, obligationID uuid.UUID, paymentDate time.Time, amount int64) error {
	pending := StatusPending

	entries, err := s.repo.ListEntries(ctx, ListFilter{ObligationID: &obligationID, Status: &pending})
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.ScheduledAmount != amount {
			continue
		}

		return s.repo.CompleteEntry(ctx, e.ID)
	}

	return nil
}

// Stats holds per-day and aggregate scheduled totals for one month.
// OverdueCount covers every pending entry before today system-wide, not
// only the queried month.
type Stats struct {
	Year         int
	Month        time.Month
	DailyTotals  map[int]int64 // day of month -> scheduled cents
	MonthTotal   int64
	EntryCount   int
	OverdueCount int
}

func (s *Service) Stats(ctx context.Context, year int, month time.Month, today time.Time) (*Stats, error) {
	entries, err := s.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Year:        year,
		Month:       month,
		DailyTotals: make(map[int]int64),
	}

	for _, e := range entries {
		if e.Status == StatusSuperseded {
			continue
		}

		stats.DailyTotals[e.ScheduledDate.Day()] += e.ScheduledAmount
		stats.MonthTotal += e.ScheduledAmount
		stats.EntryCount++
	}

	overdue, err := s.repo.CountOverdue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("counting overdue entries: %w", err)
	}

	stats.OverdueCount = overdue

	return stats, nil
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
