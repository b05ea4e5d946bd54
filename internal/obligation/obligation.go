package obligation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/money"
)

// PaymentType represents how an obligation is settled over time.
type PaymentType string

const (
	TypeSingle      PaymentType = "single"
	TypeInstallment PaymentType = "installment"
	TypeRecurring   PaymentType = "recurring"
)

// Status represents the lifecycle state of an obligation. It is always
// derived from the underlying sums via DeriveStatus, never set freely.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Obligation represents a trackable amount owed.
type Obligation struct {
	ID          uuid.UUID
	Name        string
	TotalAmount int64 // Amount in cents
	PaidAmount  int64 // Sum of this obligation's payment records
	Status      Status
	PaymentType PaymentType
	StartDate   time.Time
	DueDate     *time.Time
	EndDate     *time.Time
	ProjectID   *uuid.UUID
	CategoryID  *uuid.UUID

	// Installment siblings share a GroupID; PeriodIndex is 1..N within
	// the group and 0 for standalone obligations.
	GroupID     *uuid.UUID
	PeriodIndex int

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Remaining returns the still-unpaid portion.
func (o *Obligation) Remaining() int64 {
	return o.TotalAmount - o.PaidAmount
}

// PaymentRecord is an immutable settlement against an obligation.
// Corrections are new offsetting records, never mutations.
type PaymentRecord struct {
	ID            uuid.UUID
	ObligationID  uuid.UUID
	AmountPaid    int64
	PaymentDate   time.Time
	PaymentMethod string
	CreatedAt     time.Time
}

var (
	ErrNotFound               = errors.New("obligation not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// OverpaymentError reports a rejected payment together with the largest
// amount that would still be accepted, so the caller can retry.
type OverpaymentError struct {
	MaxAcceptable int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance, max acceptable %s", money.Format(e.MaxAcceptable))
}
