package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/obligation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, filter ListFilter) ([]*Item, error)
	// MarkConverted flips IsConverted, conditioned on the item not
	// already being converted; ErrAlreadyConverted otherwise.
	MarkConverted(ctx context.Context, id uuid.UUID) error
}

// ObligationCreator materializes a converted item into real
// obligations. Satisfied by the obligation service.
type ObligationCreator interface {
	Create(ctx context.Context, params obligation.CreateParams) ([]*obligation.Obligation, error)
}

type ListFilter struct {
	PlanID        *uuid.UUID
	ConvertedOnly *bool
}

type Service struct {
	repo        Repository
	obligations ObligationCreator
}

func NewService(repo Repository, obligations ObligationCreator) *Service {
	return &Service{repo: repo, obligations: obligations}
}

func (s *Service) Create(ctx context.Context, item *Item) (*Item, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	switch item.PaymentType {
	case TypeSingle:
		if item.PlannedAmount <= 0 {
			return nil, fmt.Errorf("%w: planned amount must be positive", ErrInvalidArgument)
		}
	case TypeMonthly:
		if item.MonthlyAmount <= 0 || item.MonthCount < 1 {
			return nil, fmt.Errorf("%w: monthly items need a monthly amount and month count", ErrInvalidArgument)
		}

		item.PlannedAmount = item.MonthlyAmount * int64(item.MonthCount)
	case TypeInstallment:
		if item.PlannedAmount <= 0 || item.InstallmentCount < 1 {
			return nil, fmt.Errorf("%w: installment items need a total and installment count", ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidArgument, item.PaymentType)
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	return s.repo.ListItems(ctx, filter)
}

// Convert materializes the item into real obligation(s) and marks it
// converted so the projector stops counting the plan.
func (s *Service) Convert(ctx context.Context, id uuid.UUID) ([]*obligation.Obligation, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.IsConverted {
		return nil, ErrAlreadyConverted
	}

	params := obligation.CreateParams{
		Name:        item.Name,
		TotalAmount: item.PlannedAmount,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
	}

	switch item.PaymentType {
	case TypeMonthly:
		params.PaymentType = obligation.TypeInstallment
		params.PeriodCount = item.MonthCount
	case TypeInstallment:
		params.PaymentType = obligation.TypeInstallment
		params.PeriodCount = item.InstallmentCount
	default:
		params.PaymentType = obligation.TypeSingle
		due := item.StartDate
		params.DueDate = &due
	}

	created, err := s.obligations.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("materializing budget item: %w", err)
	}

	if err := s.repo.MarkConverted(ctx, id); err != nil {
		return nil, err
	}

	return created, nil
}
