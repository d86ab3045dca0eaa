package settlement_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/settlement"
)

var jst = time.FixedZone("JST", 9*60*60)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, jst)
}

func newService(repo settlement.Repository) *settlement.Service {
	return settlement.NewService(repo,
		settlement.WithLocation(jst),
		settlement.WithClock(func() time.Time { return time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC) }),
	)
}

func TestService_Get(t *testing.T) {
	date := day(2026, 10, 18)

	type testCase struct {
		name      string
		setupMock func(m *settlement.MockRepository)
		verify    func(t *testing.T, got *settlement.DailySettlement)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "UnsavedSnapshot",
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().GetSettlement(gomock.Any(), date).Return(nil, settlement.ErrNotFound)
			},
			verify: func(t *testing.T, got *settlement.DailySettlement) {
				assert.False(t, got.Saved)
				assert.Equal(t, int64(0), got.OpeningCashFloat)
				assert.Equal(t, int64(300), got.TotalSalesCash)
				assert.Equal(t, int64(300), got.ExpectedCash)
				assert.Nil(t, got.ActualCash)
				assert.Nil(t, got.Discrepancy)
			},
		},
		{
			name: "StoredWithLiveSales",
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(600), nil)
				m.EXPECT().GetSettlement(gomock.Any(), date).Return(&settlement.DailySettlement{
					OpeningCashFloat: 1000,
					TotalSalesCash:   300,
					ExpectedCash:     1300,
				}, nil)
			},
			verify: func(t *testing.T, got *settlement.DailySettlement) {
				assert.True(t, got.Saved)
				assert.Equal(t, int64(600), got.TotalSalesCash)
				assert.Equal(t, int64(1600), got.ExpectedCash)
				assert.False(t, got.Settled())
			},
		},
		{
			name: "StorageFailure",
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db gone"))
			},
			wantErr: errors.New("summing sales: db gone"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settlement.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := newService(repo).Get(context.Background(), date.Add(15*time.Hour))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())

				return
			}

			require.NoError(t, err)
			assert.True(t, got.Date.Equal(date))
			tt.verify(t, got)
		})
	}
}

func TestService_SetOpeningFloat(t *testing.T) {
	date := day(2026, 10, 18)

	type testCase struct {
		name      string
		amount    int64
		setupMock func(m *settlement.MockRepository)
		verify    func(t *testing.T, got *settlement.DailySettlement)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "NewDay",
			amount: 1000,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().
					SaveOpeningFloat(gomock.Any(), date, int64(1000), int64(300)).
					Return(&settlement.DailySettlement{OpeningCashFloat: 1000, TotalSalesCash: 300, ExpectedCash: 1300}, nil)
			},
			verify: func(t *testing.T, got *settlement.DailySettlement) {
				assert.True(t, got.Saved)
				assert.True(t, got.Date.Equal(date))
				assert.Equal(t, int64(1300), got.ExpectedCash)
				assert.False(t, got.Settled())
			},
		},
		{
			name:   "KeepsCountedCashWithoutRewritingIt",
			amount: 1200,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().GetSettlement(gomock.Any(), gomock.Any()).Times(0)
				m.EXPECT().
					SaveOpeningFloat(gomock.Any(), date, int64(1200), int64(300)).
					Return(&settlement.DailySettlement{
						OpeningCashFloat: 1200,
						TotalSalesCash:   300,
						ExpectedCash:     1500,
						ActualCash:       new(int64(1500)),
						Discrepancy:      new(int64(0)),
					}, nil)
			},
			verify: func(t *testing.T, got *settlement.DailySettlement) {
				assert.Equal(t, int64(1500), got.ExpectedCash)
				require.NotNil(t, got.ActualCash)
				assert.Equal(t, int64(1500), *got.ActualCash)
				require.NotNil(t, got.Discrepancy)
				assert.Equal(t, int64(0), *got.Discrepancy)
			},
		},
		{
			name:   "StoreFailure",
			amount: 1000,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				m.EXPECT().SaveOpeningFloat(gomock.Any(), date, int64(1000), int64(0)).Return(nil, errors.New("db gone"))
			},
			wantErr: errors.New("db gone"),
		},
		{
			name:    "NegativeAmount",
			amount:  -1,
			wantErr: settlement.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settlement.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := newService(repo).SetOpeningFloat(context.Background(), date, tt.amount)

			if tt.wantErr != nil {
				require.Error(t, err)

				if !errors.Is(err, tt.wantErr) {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestService_Settle(t *testing.T) {
	date := day(2026, 10, 18)

	settled := func(actual, discrepancy int64) *settlement.DailySettlement {
		return &settlement.DailySettlement{
			OpeningCashFloat: 1000,
			TotalSalesCash:   300,
			ExpectedCash:     1300,
			ActualCash:       &actual,
			Discrepancy:      &discrepancy,
		}
	}

	type testCase struct {
		name            string
		actual          int64
		setupMock       func(m *settlement.MockRepository)
		wantDiscrepancy int64
		wantErr         error
	}

	tests := []testCase{
		{
			name:   "Surplus",
			actual: 1500,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().SaveActualCash(gomock.Any(), date, int64(1500), int64(300)).Return(settled(1500, 200), nil)
			},
			wantDiscrepancy: 200,
		},
		{
			name:   "Shortage",
			actual: 1200,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().SaveActualCash(gomock.Any(), date, int64(1200), int64(300)).Return(settled(1200, -100), nil)
			},
			wantDiscrepancy: -100,
		},
		{
			name:   "NotInitialized",
			actual: 1500,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), date, date.AddDate(0, 0, 1)).Return(int64(300), nil)
				m.EXPECT().SaveActualCash(gomock.Any(), date, int64(1500), int64(300)).Return(nil, settlement.ErrNotFound)
			},
			wantErr: settlement.ErrNotInitialized,
		},
		{
			name:    "NegativeActual",
			actual:  -5,
			wantErr: settlement.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settlement.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := newService(repo).Settle(context.Background(), date, tt.actual)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Saved)
			assert.Equal(t, int64(1300), got.ExpectedCash)
			require.NotNil(t, got.Discrepancy)
			assert.Equal(t, tt.wantDiscrepancy, *got.Discrepancy)
		})
	}
}

func TestService_DayBoundaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	svc := newService(repo)

	// 16:00 UTC is already 01:00 the next morning in Tokyo.
	today := svc.Today()
	assert.True(t, today.Equal(day(2026, 10, 19)))

	repo.EXPECT().SalesTotal(gomock.Any(), day(2026, 10, 19), day(2026, 10, 20)).Return(int64(0), nil)
	repo.EXPECT().GetSettlement(gomock.Any(), day(2026, 10, 19)).Return(nil, settlement.ErrNotFound)

	_, err := svc.Get(context.Background(), time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestService_ParseDay(t *testing.T) {
	svc := newService(nil)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "today", want: day(2026, 10, 19)},
		{in: "", want: day(2026, 10, 19)},
		{in: "2026-01-02", want: day(2026, 1, 2)},
		{in: "02/01/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := svc.ParseDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, settlement.ErrInvalidInput)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestTally(t *testing.T) {
	tests := []struct {
		name    string
		counts  map[int64]int64
		want    int64
		wantErr bool
	}{
		{
			name:   "MixedDrawer",
			counts: map[int64]int64{10000: 1, 1000: 3, 500: 2, 100: 7, 10: 4, 1: 3},
			want:   14743,
		},
		{
			name:   "Empty",
			counts: map[int64]int64{},
			want:   0,
		},
		{
			name:    "NegativeCount",
			counts:  map[int64]int64{100: -1},
			wantErr: true,
		},
		{
			name:    "UnknownDenomination",
			counts:  map[int64]int64{2000: 1},
			wantErr: true,
		},
		{
			name:    "CountOverflows",
			counts:  map[int64]int64{10000: math.MaxInt64 / 10000, 5000: 2},
			wantErr: true,
		},
		{
			name:    "SingleDenominationOverflows",
			counts:  map[int64]int64{10000: 1 << 62},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := settlement.Tally(tt.counts)
			if tt.wantErr {
				assert.ErrorIs(t, err, settlement.ErrInvalidInput)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
