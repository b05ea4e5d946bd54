package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/payplanhq/payplan/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schedule.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *schedule.Entry) error {
			e.ID = uuid.New()
			e.CreatedAt = time.Now()
			return nil
		})

	got, err := schedule.NewService(repo).Create(context.Background(), schedule.CreateParams{
		ObligationID:    uuid.New(),
		ScheduledDate:   date(2026, time.September, 10),
		ScheduledAmount: 25000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, schedule.StatusPending, got.Status)
}

func TestService_Create_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schedule.NewMockRepository(ctrl)

	_, err := schedule.NewService(repo).Create(context.Background(), schedule.CreateParams{
		ObligationID:    uuid.New(),
		ScheduledDate:   date(2026, time.September, 10),
		ScheduledAmount: 0,
	})
	assert.ErrorIs(t, err, schedule.ErrInvalidArgument)
}

func TestService_Reschedule(t *testing.T) {
	entryID := uuid.New()
	obligationID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *schedule.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *schedule.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&schedule.Entry{
						ID:              entryID,
						ObligationID:    obligationID,
						ScheduledDate:   date(2026, time.July, 1),
						ScheduledAmount: 40000,
						Status:          schedule.StatusPending,
					}, nil)
				m.EXPECT().
					Supersede(gomock.Any(), entryID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, replacement *schedule.Entry) error {
						replacement.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "AlreadySuperseded",
			setupMock: func(m *schedule.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&schedule.Entry{
						ID:     entryID,
						Status: schedule.StatusSuperseded,
					}, nil)
			},
			wantErr: schedule.ErrInvalidArgument,
		},
		{
			name: "RaceLost",
			setupMock: func(m *schedule.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&schedule.Entry{
						ID:              entryID,
						ObligationID:    obligationID,
						ScheduledAmount: 40000,
						Status:          schedule.StatusPending,
					}, nil)
				m.EXPECT().
					Supersede(gomock.Any(), entryID, gomock.Any()).
					Return(schedule.ErrConcurrentModification)
			},
			wantErr: schedule.ErrConcurrentModification,
		},
		{
			name: "NotFound",
			setupMock: func(m *schedule.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(nil, schedule.ErrNotFound)
			},
			wantErr: schedule.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := schedule.NewMockRepository(ctrl)
			tt.setupMock(repo)

			newDate := date(2026, time.August, 1)

			replacement, err := schedule.NewService(repo).Reschedule(context.Background(), entryID, newDate, "pushed a month")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, newDate, replacement.ScheduledDate)
			assert.Equal(t, int64(40000), replacement.ScheduledAmount)
			assert.Equal(t, obligationID, replacement.ObligationID)
			assert.Equal(t, schedule.StatusPending, replacement.Status)
		})
	}
}

func TestService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := date(2026, time.June, 20)

	repo := schedule.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return([]*schedule.Entry{
			{ScheduledDate: date(2026, time.June, 5), ScheduledAmount: 10000, Status: schedule.StatusPending},
			{ScheduledDate: date(2026, time.June, 5), ScheduledAmount: 5000, Status: schedule.StatusCompleted},
			{ScheduledDate: date(2026, time.June, 25), ScheduledAmount: 20000, Status: schedule.StatusPending},
			// Superseded entries stay out of the totals.
			{ScheduledDate: date(2026, time.June, 25), ScheduledAmount: 99999, Status: schedule.StatusSuperseded},
		}, nil)
	repo.EXPECT().
		CountOverdue(gomock.Any(), today).
		Return(7, nil)

	stats, err := schedule.NewService(repo).Stats(context.Background(), 2026, time.June, today)
	require.NoError(t, err)

	assert.Equal(t, int64(15000), stats.DailyTotals[5])
	assert.Equal(t, int64(20000), stats.DailyTotals[25])
	assert.Equal(t, int64(35000), stats.MonthTotal)
	assert.Equal(t, 3, stats.EntryCount)
	assert.Equal(t, 7, stats.OverdueCount)
}

func TestService_CompleteMatching(t *testing.T) {
	obligationID := uuid.New()
	matchID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schedule.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return([]*schedule.Entry{
			{ID: uuid.New(), ScheduledAmount: 11111, Status: schedule.StatusPending},
			{ID: matchID, ScheduledAmount: 25000, Status: schedule.StatusPending},
		}, nil)
	repo.EXPECT().
		CompleteEntry(gomock.Any(), matchID).
		Return(nil)

	err := schedule.NewService(repo).CompleteMatching(context.Background(), obligationID, date(2026, time.June, 1), 25000)
	assert.NoError(t, err)
}

func TestService_CompleteMatching_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schedule.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	err := schedule.NewService(repo).CompleteMatching(context.Background(), uuid.New(), date(2026, time.June, 1), 25000)
	assert.NoError(t, err)
}

func TestEntry_IsOverdue(t *testing.T) {
	today := date(2026, time.June, 15)

	type testCase struct {
		name  string
		entry schedule.Entry
		want  bool
	}

	tests := []testCase{
		{
			name:  "PendingPastDate",
			entry: schedule.Entry{Status: schedule.StatusPending, ScheduledDate: date(2026, time.June, 10)},
			want:  true,
		},
		{
			name:  "PendingToday",
			entry: schedule.Entry{Status: schedule.StatusPending, ScheduledDate: date(2026, time.June, 15)},
			want:  false,
		},
		{
			name:  "PendingFuture",
			entry: schedule.Entry{Status: schedule.StatusPending, ScheduledDate: date(2026, time.July, 1)},
			want:  false,
		},
		{
			name:  "CompletedPastDate",
			entry: schedule.Entry{Status: schedule.StatusCompleted, ScheduledDate: date(2026, time.June, 10)},
			want:  false,
		},
		{
			name:  "SupersededPastDate",
			entry: schedule.Entry{Status: schedule.StatusSuperseded, ScheduledDate: date(2026, time.June, 10)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsOverdue(today))
		})
	}
}
