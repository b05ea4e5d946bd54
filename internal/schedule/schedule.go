package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a planned settlement entry.
type Status string

const (
	StatusPending Status = "pending"
	// StatusCompleted marks an entry whose settlement has been recorded.
	StatusCompleted Status = "completed"
	// StatusSuperseded marks an entry replaced by a reschedule. The
	// entry keeps its original date; SupersededBy points at the
	// replacement, preserving the audit trail.
	StatusSuperseded Status = "superseded"
)

// Entry is an explicit planned future settlement, distinct from the
// owning obligation's own due date.
type Entry struct {
	ID              uuid.UUID
	ObligationID    uuid.UUID
	ScheduledDate   time.Time
	ScheduledAmount int64 // Amount in cents
	Status          Status
	SupersededBy    *uuid.UUID
	Notes           string
	CreatedAt       time.Time
}

// IsOverdue reports whether the entry is still pending past its date.
// Derived on read, never stored.
func (e *Entry) IsOverdue(today time.Time) bool {
	if e.Status != StatusPending {
		return false
	}

	ey, em, ed := e.ScheduledDate.Date()
	ty, tm, td := today.Date()

	entry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	return entry.Before(day)
}

var (
	ErrNotFound               = errors.New("schedule entry not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrConcurrentModification = errors.New("concurrent modification")
)
