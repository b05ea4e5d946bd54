package obligation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/schedule"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=obligation
type Repository interface {
	CreateObligation(ctx context.Context, o *Obligation) error
	// CreateObligations persists an installment group in one database
	// transaction; either every sibling lands or none do.
	CreateObligations(ctx context.Context, os []*Obligation) error
	GetObligation(ctx context.Context, id uuid.UUID) (*Obligation, error)
	ListObligations(ctx context.Context, filter ListFilter) ([]*Obligation, error)
	// UpdateObligation writes the obligation conditioned on paidAmount
	// still being expectedPaid; ErrConcurrentModification otherwise.
	UpdateObligation(ctx context.Context, o *Obligation, expectedPaid int64) error
	SoftDeleteObligation(ctx context.Context, id uuid.UUID) error

	// RecordPayment appends the record and moves paidAmount from
	// expectedPaid to newPaid with the derived status, atomically.
	// A stale expectedPaid yields ErrConcurrentModification with no
	// side effects.
	RecordPayment(ctx context.Context, rec *PaymentRecord, expectedPaid, newPaid int64, newStatus Status) error
	ListPaymentRecords(ctx context.Context, obligationID uuid.UUID) ([]*PaymentRecord, error)
	ListAllPaymentRecords(ctx context.Context) ([]*PaymentRecord, error)
}

// ScheduleSource supplies the schedule entries attached to an
// obligation, for the integrated view and for completing a planned
// entry when its settlement arrives.
type ScheduleSource interface {
	ListByObligation(ctx context.Context, obligationID uuid.UUID) ([]*schedule.Entry, error)
	CompleteMatching(ctx context.Context, obligationID uuid.UUID, paymentDate time.Time, amount int64) error
}

type Service struct {
	repo  Repository
	sched ScheduleSource
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithScheduleSource links the schedule tracker so payments can settle
// their planned entries and the integrated view can include them.
func (s *Service) WithScheduleSource(sched ScheduleSource) *Service {
	s.sched = sched
	return s
}

// WithClock overrides the time source, for deterministic tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	Name        string
	TotalAmount int64
	PaymentType PaymentType
	PeriodCount int
	StartDate   time.Time
	DueDate     *time.Time
	EndDate     *time.Time
	ProjectID   *uuid.UUID
	CategoryID  *uuid.UUID
}

type ListFilter struct {
	Status      *Status
	PaymentType *PaymentType
	StartDate   *time.Time
	EndDate     *time.Time
	GroupID     *uuid.UUID
}

// Create persists one obligation, or the full generated sibling set for
// installment obligations. The returned slice always holds at least one
// element.
func (s *Service) Create(ctx context.Context, params CreateParams) ([]*Obligation, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if params.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total must not be negative", ErrInvalidArgument)
	}

	today := s.now()

	if params.PaymentType == TypeInstallment && params.PeriodCount > 1 {
		return s.createGroup(ctx, params, today)
	}

	o := &Obligation{
		Name:        params.Name,
		TotalAmount: params.TotalAmount,
		PaymentType: params.PaymentType,
		StartDate:   params.StartDate,
		DueDate:     params.DueDate,
		EndDate:     params.EndDate,
		ProjectID:   params.ProjectID,
		CategoryID:  params.CategoryID,
	}
	o.Status = DeriveStatus(0, o.TotalAmount, o.DueDate, today)

	if err := s.repo.CreateObligation(ctx, o); err != nil {
		return nil, err
	}

	return []*Obligation{o}, nil
}

func (s *Service) createGroup(ctx context.Context, params CreateParams, today time.Time) ([]*Obligation, error) {
	periods, err := SplitInstallments(params.TotalAmount, params.PeriodCount, params.StartDate)
	if err != nil {
		return nil, err
	}

	groupID := uuid.New()

	os := make([]*Obligation, len(periods))
	for i, p := range periods {
		due := p.DueDate

		o := &Obligation{
			Name:        fmt.Sprintf("%s (%d/%d)", params.Name, p.Period, len(periods)),
			TotalAmount: p.Amount,
			PaymentType: TypeInstallment,
			StartDate:   p.DueDate,
			DueDate:     &due,
			EndDate:     params.EndDate,
			ProjectID:   params.ProjectID,
			CategoryID:  params.CategoryID,
			GroupID:     &groupID,
			PeriodIndex: p.Period,
		}
		o.Status = DeriveStatus(0, o.TotalAmount, o.DueDate, today)
		os[i] = o
	}

	if err := s.repo.CreateObligations(ctx, os); err != nil {
		return nil, err
	}

	return os, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Obligation, error) {
	return s.repo.GetObligation(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Obligation, error) {
	return s.repo.ListObligations(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteObligation(ctx, id)
}

type UpdateParams struct {
	Name        *string
	TotalAmount *int64
	DueDate     *time.Time
	ClearDue    bool
	EndDate     *time.Time
	ProjectID   *uuid.UUID
	CategoryID  *uuid.UUID
}

// Update applies the given fields and re-derives status from the new
// sums. Lowering the total below what is already paid is rejected;
// raising it can move a paid obligation back to partial.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Obligation, error) {
	o, err := s.repo.GetObligation(ctx, id)
	if err != nil {
		return nil, err
	}

	expectedPaid := o.PaidAmount

	if params.Name != nil {
		o.Name = *params.Name
	}

	if params.TotalAmount != nil {
		if *params.TotalAmount < 0 {
			return nil, fmt.Errorf("%w: total must not be negative", ErrInvalidArgument)
		}

		if *params.TotalAmount < o.PaidAmount {
			return nil, fmt.Errorf("%w: total below already-paid amount", ErrInvalidArgument)
		}

		o.TotalAmount = *params.TotalAmount
	}

	switch {
	case params.ClearDue:
		o.DueDate = nil
	case params.DueDate != nil:
		o.DueDate = params.DueDate
	}

	if params.EndDate != nil {
		o.EndDate = params.EndDate
	}

	if params.ProjectID != nil {
		o.ProjectID = params.ProjectID
	}

	if params.CategoryID != nil {
		o.CategoryID = params.CategoryID
	}

	o.Status = DeriveStatus(o.PaidAmount, o.TotalAmount, o.DueDate, s.now())

	if err := s.repo.UpdateObligation(ctx, o, expectedPaid); err != nil {
		return nil, err
	}

	return o, nil
}

// RecordPayment appends an immutable settlement and rolls paidAmount
// and status forward in one atomic store operation. Overpayment is
// rejected before any write, reporting the maximum acceptable amount.
func (s *Service) RecordPayment(ctx context.Context, obligationID uuid.UUID, amount int64, date time.Time, method string) (*Obligation, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidArgument)
	}

	o, err := s.repo.GetObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}

	if o.PaidAmount+amount > o.TotalAmount {
		return nil, &OverpaymentError{MaxAcceptable: o.TotalAmount - o.PaidAmount}
	}

	rec := &PaymentRecord{
		ObligationID:  obligationID,
		AmountPaid:    amount,
		PaymentDate:   date,
		PaymentMethod: method,
	}

	newPaid := o.PaidAmount + amount
	newStatus := DeriveStatus(newPaid, o.TotalAmount, o.DueDate, s.now())

	if err := s.repo.RecordPayment(ctx, rec, o.PaidAmount, newPaid, newStatus); err != nil {
		return nil, err
	}

	o.PaidAmount = newPaid
	o.Status = newStatus

	if s.sched != nil {
		if err := s.sched.CompleteMatching(ctx, obligationID, date, amount); err != nil {
			return nil, fmt.Errorf("completing schedule entry: %w", err)
		}
	}

	return o, nil
}

// ListAllRecords returns every payment record in the store, for the
// cash-flow projector's settled-payment attribution.
func (s *Service) ListAllRecords(ctx context.Context) ([]*PaymentRecord, error) {
	return s.repo.ListAllPaymentRecords(ctx)
}

// IntegratedView merges an obligation with its own payment records and
// schedule entries plus the derived totals the callers keep recomputing.
type IntegratedView struct {
	Obligation     *Obligation
	Records        []*PaymentRecord
	Entries        []*schedule.Entry
	ActualPaid     int64
	ScheduledTotal int64
	PendingAmount  int64
}

func (s *Service) IntegratedView(ctx context.Context, id uuid.UUID) (*IntegratedView, error) {
	o, err := s.repo.GetObligation(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListPaymentRecords(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing payment records: %w", err)
	}

	var entries []*schedule.Entry

	if s.sched != nil {
		entries, err = s.sched.ListByObligation(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing schedule entries: %w", err)
		}
	}

	view := &IntegratedView{
		Obligation:    o,
		Records:       records,
		Entries:       entries,
		PendingAmount: o.Remaining(),
	}

	for _, r := range records {
		view.ActualPaid += r.AmountPaid
	}

	for _, e := range entries {
		if e.Status == schedule.StatusPending {
			view.ScheduledTotal += e.ScheduledAmount
		}
	}

	return view, nil
}
