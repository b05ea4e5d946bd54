package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/schedule"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	e.id, e.obligation_id, e.scheduled_date, e.scheduled_amount, e.status,
	e.superseded_by, e.notes, e.created_at
`

func scanEntry(s scanner) (*schedule.Entry, error) {
	var e schedule.Entry

	var statusStr string

	var notes sql.NullString

	if err := s.Scan(
		&e.ID, &e.ObligationID, &e.ScheduledDate, &e.ScheduledAmount, &statusStr,
		&e.SupersededBy, &notes, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = schedule.Status(statusStr)
	e.Notes = notes.String

	return &e, nil
}

const insertEntryQuery = `
	INSERT INTO schedule_entries (obligation_id, scheduled_date, scheduled_amount, status, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateEntry(ctx context.Context, e *schedule.Entry) error {
	err := s.db.QueryRowContext(ctx, insertEntryQuery,
		e.ObligationID,
		e.ScheduledDate,
		e.ScheduledAmount,
		e.Status,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating schedule entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*schedule.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM schedule_entries e
		WHERE e.id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, schedule.ErrNotFound
		}

		return nil, fmt.Errorf("getting schedule entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter schedule.ListFilter) ([]*schedule.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM schedule_entries e
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ObligationID != nil {
		query += fmt.Sprintf(" AND e.obligation_id = $%d", argIdx)

		args = append(args, *filter.ObligationID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND e.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND e.scheduled_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND e.scheduled_date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY e.scheduled_date ASC, e.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []*schedule.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entry rows: %w", err)
	}

	return entries, nil
}

// Supersede inserts the replacement entry and flips the original from
// pending to superseded, pointing it at the replacement. Both happen in
// one transaction; an original that is no longer pending rolls the whole
// thing back so two racing reschedules cannot both win.
func (s *Store) Supersede(ctx context.Context, originalID uuid.UUID, replacement *schedule.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := dbTx.QueryRowContext(ctx, insertEntryQuery,
		replacement.ObligationID,
		replacement.ScheduledDate,
		replacement.ScheduledAmount,
		replacement.Status,
		replacement.Notes,
	).Scan(&replacement.ID, &replacement.CreatedAt); err != nil {
		return fmt.Errorf("inserting replacement entry: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `
		UPDATE schedule_entries
		SET status = $1, superseded_by = $2
		WHERE id = $3 AND status = $4
	`, schedule.StatusSuperseded, replacement.ID, originalID, schedule.StatusPending)
	if err != nil {
		return fmt.Errorf("superseding entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("superseding entry: %w", err)
	}

	if affected == 0 {
		return schedule.ErrConcurrentModification
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing reschedule: %w", err)
	}

	return nil
}

func (s *Store) CompleteEntry(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE schedule_entries
		SET status = $1
		WHERE id = $2 AND status = $3
	`, schedule.StatusCompleted, id, schedule.StatusPending)
	if err != nil {
		return fmt.Errorf("completing schedule entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing schedule entry: %w", err)
	}

	if affected == 0 {
		return schedule.ErrConcurrentModification
	}

	return nil
}

// CountOverdue counts pending entries dated before today across the
// whole store, regardless of month.
func (s *Store) CountOverdue(ctx context.Context, today time.Time) (int, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var count int

	query := `SELECT COUNT(*) FROM schedule_entries WHERE status = $1 AND scheduled_date < $2`
	if err := s.db.QueryRowContext(ctx, query, schedule.StatusPending, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting overdue entries: %w", err)
	}

	return count, nil
}
