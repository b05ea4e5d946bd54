package obligation

import (
	"time"

	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/money"
	"github.com/payplanhq/payplan/internal/obligation"
	"github.com/payplanhq/payplan/internal/schedule"
)

type obligationResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	TotalAmount   int64                  `json:"total_amount"`
	PaidAmount    int64                  `json:"paid_amount"`
	Remaining     int64                  `json:"remaining"`
	TotalDisplay  string                 `json:"total_display"`
	Status        obligation.Status      `json:"status"`
	PaymentType   obligation.PaymentType `json:"payment_type"`
	StartDate     time.Time              `json:"start_date"`
	DueDate       *time.Time             `json:"due_date,omitempty"`
	EndDate       *time.Time             `json:"end_date,omitempty"`
	ProjectID     *uuid.UUID             `json:"project_id,omitempty"`
	CategoryID    *uuid.UUID             `json:"category_id,omitempty"`
	GroupID       *uuid.UUID             `json:"group_id,omitempty"`
	PeriodIndex   int                    `json:"period_index,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
}

func toResponse(o *obligation.Obligation) obligationResponse {
	return obligationResponse{
		ID:           o.ID,
		Name:         o.Name,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.PaidAmount,
		Remaining:    o.Remaining(),
		TotalDisplay: money.Format(o.TotalAmount),
		Status:       o.Status,
		PaymentType:  o.PaymentType,
		StartDate:    o.StartDate,
		DueDate:      o.DueDate,
		EndDate:      o.EndDate,
		ProjectID:    o.ProjectID,
		CategoryID:   o.CategoryID,
		GroupID:      o.GroupID,
		PeriodIndex:  o.PeriodIndex,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toResponseList(os []*obligation.Obligation) []obligationResponse {
	resp := make([]obligationResponse, len(os))
	for i, o := range os {
		resp[i] = toResponse(o)
	}

	return resp
}

type paymentRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	ObligationID  uuid.UUID `json:"obligation_id"`
	AmountPaid    int64     `json:"amount_paid"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

type scheduleEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	ScheduledDate   time.Time       `json:"scheduled_date"`
	ScheduledAmount int64           `json:"scheduled_amount"`
	Status          schedule.Status `json:"status"`
	SupersededBy    *uuid.UUID      `json:"superseded_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type integratedResponse struct {
	Obligation     obligationResponse      `json:"obligation"`
	Records        []paymentRecordResponse `json:"records"`
	Entries        []scheduleEntryResponse `json:"entries"`
	ActualPaid     int64                   `json:"actual_paid"`
	ScheduledTotal int64                   `json:"scheduled_total"`
	PendingAmount  int64                   `json:"pending_amount"`
}

func toIntegratedResponse(v *obligation.IntegratedView) integratedResponse {
	resp := integratedResponse{
		Obligation:     toResponse(v.Obligation),
		Records:        make([]paymentRecordResponse, len(v.Records)),
		Entries:        make([]scheduleEntryResponse, len(v.Entries)),
		ActualPaid:     v.ActualPaid,
		ScheduledTotal: v.ScheduledTotal,
		PendingAmount:  v.PendingAmount,
	}

	for i, r := range v.Records {
		resp.Records[i] = paymentRecordResponse{
			ID:            r.ID,
			ObligationID:  r.ObligationID,
			AmountPaid:    r.AmountPaid,
			PaymentDate:   r.PaymentDate,
			PaymentMethod: r.PaymentMethod,
			CreatedAt:     r.CreatedAt,
		}
	}

	for i, e := range v.Entries {
		resp.Entries[i] = scheduleEntryResponse{
			ID:              e.ID,
			ScheduledDate:   e.ScheduledDate,
			ScheduledAmount: e.ScheduledAmount,
			Status:          e.Status,
			SupersededBy:    e.SupersededBy,
			Notes:           e.Notes,
		}
	}

	return resp
}
