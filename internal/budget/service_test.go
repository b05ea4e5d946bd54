package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/payplanhq/payplan/internal/budget"
	"github.com/payplanhq/payplan/internal/obligation"
)

func TestService_Create(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		item      *budget.Item
		setupMock func(m *budget.MockRepository)
		wantErr   error
		check     func(t *testing.T, item *budget.Item)
	}{
		{
			name: "MonthlyComputesPlannedAmount",
			item: &budget.Item{
				Name:          "Cleaning service",
				PaymentType:   budget.TypeMonthly,
				MonthlyAmount: 5000,
				MonthCount:    3,
				StartDate:     start,
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, item *budget.Item) {
				assert.Equal(t, int64(15000), item.PlannedAmount)
			},
		},
		{
			name: "Single",
			item: &budget.Item{
				Name:          "Paint job",
				PaymentType:   budget.TypeSingle,
				PlannedAmount: 30000,
				StartDate:     start,
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "MissingName",
			item:    &budget.Item{PaymentType: budget.TypeSingle, PlannedAmount: 100},
			wantErr: budget.ErrInvalidArgument,
		},
		{
			name: "MonthlyWithoutMonthCount",
			item: &budget.Item{
				Name:          "Broken",
				PaymentType:   budget.TypeMonthly,
				MonthlyAmount: 5000,
			},
			wantErr: budget.ErrInvalidArgument,
		},
		{
			name:    "UnknownType",
			item:    &budget.Item{Name: "Weird", PaymentType: "weekly", PlannedAmount: 100},
			wantErr: budget.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := budget.NewMockRepository(ctrl)
			if tc.setupMock != nil {
				tc.setupMock(mockRepo)
			}

			svc := budget.NewService(mockRepo, budget.NewMockObligationCreator(ctrl))

			item, err := svc.Create(context.Background(), tc.item)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, item)
			}
		})
	}
}

func TestService_Convert(t *testing.T) {
	itemID := uuid.New()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		setupMock func(m *budget.MockRepository, oc *budget.MockObligationCreator)
		wantErr   error
	}{
		{
			name: "MonthlyBecomesInstallmentGroup",
			setupMock: func(m *budget.MockRepository, oc *budget.MockObligationCreator) {
				m.EXPECT().GetItem(gomock.Any(), itemID).Return(&budget.Item{
					ID:            itemID,
					Name:          "Cleaning service",
					PaymentType:   budget.TypeMonthly,
					PlannedAmount: 15000,
					MonthlyAmount: 5000,
					MonthCount:    3,
					StartDate:     start,
				}, nil)
				oc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, params obligation.CreateParams) ([]*obligation.Obligation, error) {
						assert.Equal(t, obligation.TypeInstallment, params.PaymentType)
						assert.Equal(t, 3, params.PeriodCount)
						assert.Equal(t, int64(15000), params.TotalAmount)

						return []*obligation.Obligation{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}, nil
					})
				m.EXPECT().MarkConverted(gomock.Any(), itemID).Return(nil)
			},
		},
		{
			name: "SingleGetsDueDate",
			setupMock: func(m *budget.MockRepository, oc *budget.MockObligationCreator) {
				m.EXPECT().GetItem(gomock.Any(), itemID).Return(&budget.Item{
					ID:            itemID,
					Name:          "Paint job",
					PaymentType:   budget.TypeSingle,
					PlannedAmount: 30000,
					StartDate:     start,
				}, nil)
				oc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, params obligation.CreateParams) ([]*obligation.Obligation, error) {
						assert.Equal(t, obligation.TypeSingle, params.PaymentType)
						require.NotNil(t, params.DueDate)
						assert.Equal(t, start, *params.DueDate)

						return []*obligation.Obligation{{ID: uuid.New()}}, nil
					})
				m.EXPECT().MarkConverted(gomock.Any(), itemID).Return(nil)
			},
		},
		{
			name: "AlreadyConverted",
			setupMock: func(m *budget.MockRepository, oc *budget.MockObligationCreator) {
				m.EXPECT().GetItem(gomock.Any(), itemID).Return(&budget.Item{
					ID:          itemID,
					Name:        "Done already",
					PaymentType: budget.TypeSingle,
					IsConverted: true,
				}, nil)
			},
			wantErr: budget.ErrAlreadyConverted,
		},
		{
			name: "NotFound",
			setupMock: func(m *budget.MockRepository, oc *budget.MockObligationCreator) {
				m.EXPECT().GetItem(gomock.Any(), itemID).Return(nil, budget.ErrNotFound)
			},
			wantErr: budget.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := budget.NewMockRepository(ctrl)
			mockCreator := budget.NewMockObligationCreator(ctrl)
			tc.setupMock(mockRepo, mockCreator)

			svc := budget.NewService(mockRepo, mockCreator)

			created, err := svc.Convert(context.Background(), itemID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created)
		})
	}
}

func TestService_Convert_CreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := budget.NewMockRepository(ctrl)
	mockCreator := budget.NewMockObligationCreator(ctrl)

	itemID := uuid.New()
	mockRepo.EXPECT().GetItem(gomock.Any(), itemID).Return(&budget.Item{
		ID:            itemID,
		Name:          "Paint job",
		PaymentType:   budget.TypeSingle,
		PlannedAmount: 30000,
		StartDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	mockCreator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	svc := budget.NewService(mockRepo, mockCreator)

	_, err := svc.Convert(context.Background(), itemID)
	require.Error(t, err)
}
