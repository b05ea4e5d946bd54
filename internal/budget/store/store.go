package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/budget"
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

const selectItemColumns = `
	b.id, b.plan_id, b.name, b.planned_amount, b.payment_type,
	b.monthly_amount, b.month_count, b.installment_count,
	b.start_date, b.end_date, b.is_converted, b.created_at, b.updated_at
`

func scanItem(s scanner) (*budget.Item, error) {
	var item budget.Item

	var typeStr string

	if err := s.Scan(
		&item.ID, &item.PlanID, &item.Name, &item.PlannedAmount, &typeStr,
		&item.MonthlyAmount, &item.MonthCount, &item.InstallmentCount,
		&item.StartDate, &item.EndDate, &item.IsConverted, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	item.PaymentType = budget.PaymentType(typeStr)

	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *budget.Item) error {
	query := `
		INSERT INTO budget_items (plan_id, name, planned_amount, payment_type,
			monthly_amount, month_count, installment_count, start_date, end_date,
			is_converted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.PlanID,
		item.Name,
		item.PlannedAmount,
		item.PaymentType,
		item.MonthlyAmount,
		item.MonthCount,
		item.InstallmentCount,
		item.StartDate,
		item.EndDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*budget.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM budget_items b
		WHERE b.id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context, filter budget.ListFilter) ([]*budget.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM budget_items b
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.PlanID != nil {
		query += fmt.Sprintf(" AND b.plan_id = $%d", argIdx)

		args = append(args, *filter.PlanID)
		argIdx++
	}

	if filter.ConvertedOnly != nil {
		query += fmt.Sprintf(" AND b.is_converted = $%d", argIdx)

		args = append(args, *filter.ConvertedOnly)
		argIdx++
	}

	query += " ORDER BY b.start_date ASC, b.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budget items: %w", err)
	}
	defer rows.Close()

	var items []*budget.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget item rows: %w", err)
	}

	return items, nil
}

// MarkConverted flips is_converted, conditioned on the item not already
// being converted.
func (s *Store) MarkConverted(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budget_items
		SET is_converted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_converted = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("marking budget item converted: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking budget item converted: %w", err)
	}

	if affected == 0 {
		return budget.ErrAlreadyConverted
	}

	return nil
}
