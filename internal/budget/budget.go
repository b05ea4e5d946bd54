package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentType describes how a planned item is expected to be paid out.
type PaymentType string

const (
	TypeSingle      PaymentType = "single"
	TypeMonthly     PaymentType = "monthly"
	TypeInstallment PaymentType = "installment"
)

// Item is a forward-looking planned expenditure that has not yet been
// materialized into a real obligation. Once converted it is excluded
// from projection so the resulting obligation is not double counted.
type Item struct {
	ID            uuid.UUID
	PlanID        uuid.UUID
	Name          string
	PlannedAmount int64 // Amount in cents

	PaymentType PaymentType

	// Monthly items pay MonthlyAmount for MonthCount months.
	MonthlyAmount int64
	MonthCount    int

	// Installment items split PlannedAmount over InstallmentCount
	// periods, same rules as real installment obligations.
	InstallmentCount int

	StartDate   time.Time
	EndDate     *time.Time
	IsConverted bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

var (
	ErrNotFound         = errors.New("budget item not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrAlreadyConverted = errors.New("budget item already converted")
)
