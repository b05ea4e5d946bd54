package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/obligation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectObligationColumns = `
	o.id, o.name, o.total_amount, o.paid_amount, o.status, o.payment_type,
	o.start_date, o.due_date, o.end_date, o.project_id, o.category_id,
	o.group_id, o.period_index, o.created_at, o.updated_at, o.deleted_at
`

func scanObligation(s scanner) (*obligation.Obligation, error) {
	var o obligation.Obligation

	var statusStr, typeStr string

	if err := s.Scan(
		&o.ID, &o.Name, &o.TotalAmount, &o.PaidAmount, &statusStr, &typeStr,
		&o.StartDate, &o.DueDate, &o.EndDate, &o.ProjectID, &o.CategoryID,
		&o.GroupID, &o.PeriodIndex, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	); err != nil {
		return nil, err
	}

	o.Status = obligation.Status(statusStr)
	o.PaymentType = obligation.PaymentType(typeStr)

	return &o, nil
}

const insertObligationQuery = `
	INSERT INTO obligations (name, total_amount, paid_amount, status, payment_type,
		start_date, due_date, end_date, project_id, category_id, group_id, period_index,
		created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertObligation(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, o *obligation.Obligation,
) error {
	return q.QueryRowContext(ctx, insertObligationQuery,
		o.Name,
		o.TotalAmount,
		o.PaidAmount,
		o.Status,
		o.PaymentType,
		o.StartDate,
		o.DueDate,
		o.EndDate,
		o.ProjectID,
		o.CategoryID,
		o.GroupID,
		o.PeriodIndex,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (s *Store) CreateObligation(ctx context.Context, o *obligation.Obligation) error {
	if err := insertObligation(ctx, s.db, o); err != nil {
		return fmt.Errorf("creating obligation: %w", err)
	}

	return nil
}

// CreateObligations persists an installment group atomically.
func (s *Store) CreateObligations(ctx context.Context, os []*obligation.Obligation) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, o := range os {
		if err := insertObligation(ctx, dbTx, o); err != nil {
			return fmt.Errorf("creating obligation %q: %w", o.Name, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing obligation group: %w", err)
	}

	return nil
}

func (s *Store) GetObligation(ctx context.Context, id uuid.UUID) (*obligation.Obligation, error) {
	query := `SELECT ` + selectObligationColumns + `
		FROM obligations o
		WHERE o.id = $1 AND o.deleted_at IS NULL`

	o, err := scanObligation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, obligation.ErrNotFound
		}

		return nil, fmt.Errorf("getting obligation: %w", err)
	}

	return o, nil
}

func (s *Store) ListObligations(ctx context.Context, filter obligation.ListFilter) ([]*obligation.Obligation, error) {
	query := `SELECT ` + selectObligationColumns + `
		FROM obligations o
		WHERE o.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND o.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.PaymentType != nil {
		query += fmt.Sprintf(" AND o.payment_type = $%d", argIdx)

		args = append(args, *filter.PaymentType)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND o.start_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND o.start_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.GroupID != nil {
		query += fmt.Sprintf(" AND o.group_id = $%d", argIdx)

		args = append(args, *filter.GroupID)
		argIdx++
	}

	query += " ORDER BY o.start_date ASC, o.period_index ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing obligations: %w", err)
	}
	defer rows.Close()

	var os []*obligation.Obligation

	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning obligation: %w", err)
		}

		os = append(os, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating obligation rows: %w", err)
	}

	return os, nil
}

// UpdateObligation writes the mutable fields, conditioned on
// paid_amount not having moved since the caller read it.
func (s *Store) UpdateObligation(ctx context.Context, o *obligation.Obligation, expectedPaid int64) error {
	query := `
		UPDATE obligations
		SET name = $1, total_amount = $2, status = $3, due_date = $4, end_date = $5,
			project_id = $6, category_id = $7, updated_at = NOW()
		WHERE id = $8 AND paid_amount = $9 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		o.Name,
		o.TotalAmount,
		o.Status,
		o.DueDate,
		o.EndDate,
		o.ProjectID,
		o.CategoryID,
		o.ID,
		expectedPaid,
	)
	if err != nil {
		return fmt.Errorf("updating obligation: %w", err)
	}

	return checkConditionalUpdate(ctx, s.db, res, o.ID)
}

func (s *Store) SoftDeleteObligation(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE obligations
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting obligation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting obligation: %w", err)
	}

	if affected == 0 {
		return obligation.ErrNotFound
	}

	return nil
}

// RecordPayment appends the settlement record and moves paid_amount
// from expectedPaid to newPaid in one transaction. The paid_amount
// update is a compare-and-swap: if a concurrent writer got there first
// the whole transaction rolls back with ErrConcurrentModification.
func (s *Store) RecordPayment(ctx context.Context, rec *obligation.PaymentRecord, expectedPaid, newPaid int64, newStatus obligation.Status) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := `
		UPDATE obligations
		SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND paid_amount = $4 AND deleted_at IS NULL
	`

	res, err := dbTx.ExecContext(ctx, updateQuery, newPaid, newStatus, rec.ObligationID, expectedPaid)
	if err != nil {
		return fmt.Errorf("updating paid amount: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating paid amount: %w", err)
	}

	if affected == 0 {
		if exists, err := s.obligationExists(ctx, dbTx, rec.ObligationID); err != nil {
			return err
		} else if !exists {
			return obligation.ErrNotFound
		}

		return obligation.ErrConcurrentModification
	}

	insertQuery := `
		INSERT INTO payment_records (obligation_id, amount_paid, payment_date, payment_method, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	if err := dbTx.QueryRowContext(ctx, insertQuery,
		rec.ObligationID,
		rec.AmountPaid,
		rec.PaymentDate,
		rec.PaymentMethod,
	).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("inserting payment record: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}

func (s *Store) obligationExists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, id uuid.UUID,
) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM obligations WHERE id = $1 AND deleted_at IS NULL)`
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking obligation existence: %w", err)
	}

	return exists, nil
}

func checkConditionalUpdate(ctx context.Context, db *sql.DB, res sql.Result, id uuid.UUID) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected > 0 {
		return nil
	}

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM obligations WHERE id = $1 AND deleted_at IS NULL)`
	if err := db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("checking obligation existence: %w", err)
	}

	if !exists {
		return obligation.ErrNotFound
	}

	return obligation.ErrConcurrentModification
}

const selectRecordColumns = `
	r.id, r.obligation_id, r.amount_paid, r.payment_date, r.payment_method, r.created_at
`

func scanRecord(s scanner) (*obligation.PaymentRecord, error) {
	var r obligation.PaymentRecord

	if err := s.Scan(&r.ID, &r.ObligationID, &r.AmountPaid, &r.PaymentDate, &r.PaymentMethod, &r.CreatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *Store) ListPaymentRecords(ctx context.Context, obligationID uuid.UUID) ([]*obligation.PaymentRecord, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM payment_records r
		WHERE r.obligation_id = $1
		ORDER BY r.payment_date ASC, r.created_at ASC`

	return s.queryRecords(ctx, query, obligationID)
}

func (s *Store) ListAllPaymentRecords(ctx context.Context) ([]*obligation.PaymentRecord, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM payment_records r
		ORDER BY r.payment_date ASC, r.created_at ASC`

	return s.queryRecords(ctx, query)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]*obligation.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payment records: %w", err)
	}
	defer rows.Close()

	var records []*obligation.PaymentRecord

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment record rows: %w", err)
	}

	return records, nil
}
