package report_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/report"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

var jst = time.FixedZone("JST", 9*60*60)

type mocks struct {
	sales       *report.MockSales
	ledger      *report.MockLedger
	settlements *report.MockSettlements
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		sales:       report.NewMockSales(ctrl),
		ledger:      report.NewMockLedger(ctrl),
		settlements: report.NewMockSettlements(ctrl),
	}
}

func (m mocks) service() *report.Service {
	return report.NewService(m.sales, m.ledger, m.settlements)
}

func fixture(m mocks, day time.Time) {
	saleID := uuid.MustParse("7f0c8c36-4c52-4d3e-9a37-5d0f1f2e8a11")
	actual := int64(1500)
	discrepancy := int64(200)
	next := day.AddDate(0, 0, 1)

	m.settlements.EXPECT().Get(gomock.Any(), day).Return(&settlement.DailySettlement{
		Date:             day,
		OpeningCashFloat: 1000,
		TotalSalesCash:   660,
		ExpectedCash:     1660,
		ActualCash:       &actual,
		Discrepancy:      &discrepancy,
		Saved:            true,
	}, nil)

	m.sales.EXPECT().Sales(gomock.Any(), day, next).Return([]*checkout.Sale{{
		ID:           saleID,
		Subtotal:     600,
		TaxRate:      decimal.NewFromInt(10),
		TaxAmount:    60,
		Total:        660,
		CashReceived: 1000,
		ChangeGiven:  340,
		Lines:        []checkout.LineItem{{Name: "Coffee", UnitPrice: 300, Quantity: 2}},
		Actor:        "hanako",
		CreatedAt:    day.Add(9*time.Hour + 30*time.Minute),
	}}, nil)

	m.ledger.EXPECT().
		Movements(gomock.Any(), inventory.MovementFilter{Since: &day, Until: &next}).
		Return([]*inventory.Movement{
			{ItemName: "Coffee", ItemUnit: "cup", Type: inventory.MovementIssue, Quantity: 2, Reason: "sale", Actor: "hanako", SaleID: &saleID, CreatedAt: day.Add(9*time.Hour + 30*time.Minute)},
			{ItemName: "Coffee", ItemUnit: "cup", Type: inventory.MovementReceive, Quantity: 20, Reason: "delivery", Actor: "owner", CreatedAt: day.Add(8 * time.Hour)},
		}, nil)
}

func TestService_Daily(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2026, 10, 18, 0, 0, 0, 0, jst)

	m := newMocks(ctrl)
	fixture(m, day)

	got, err := m.service().Daily(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "daily_20261018.xlsx", got.Filename())
	require.Len(t, got.Movements, 2)
	assert.Equal(t, "delivery", got.Movements[0].Reason, "movements are oldest first")

	var buf bytes.Buffer
	require.NoError(t, got.WriteXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	assert.Equal(t, []string{"Sales", "Movements", "Settlement"}, f.GetSheetList())

	sales, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Time", sales[0][0])
	assert.Equal(t, "09:30:00", sales[1][0])
	assert.Equal(t, "Coffee x2", sales[1][2])

	total, err := f.GetCellValue("Sales", "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "660", total)

	movements, err := f.GetRows("Movements")
	require.NoError(t, err)
	require.Len(t, movements, 3)
	require.GreaterOrEqual(t, len(movements[1]), 7)
	assert.Equal(t, []string{"08:00:00", "Coffee", "Receive", "20", "cup", "delivery", "owner"}, movements[1][:7])
	assert.Equal(t, "-2", movements[2][3])

	discrepancyCell, err := f.GetCellValue("Settlement", "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "200", discrepancyCell)
}

func TestService_Daily_Errors(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, jst)

	tests := []struct {
		name      string
		setupMock func(m mocks)
		wantErr   string
	}{
		{
			name: "Settlement",
			setupMock: func(m mocks) {
				m.settlements.EXPECT().Get(gomock.Any(), day).Return(nil, errors.New("db gone"))
			},
			wantErr: "getting settlement: db gone",
		},
		{
			name: "Sales",
			setupMock: func(m mocks) {
				m.settlements.EXPECT().Get(gomock.Any(), day).Return(&settlement.DailySettlement{Date: day}, nil)
				m.sales.EXPECT().Sales(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db gone"))
			},
			wantErr: "listing sales: db gone",
		},
		{
			name: "Movements",
			setupMock: func(m mocks) {
				m.settlements.EXPECT().Get(gomock.Any(), day).Return(&settlement.DailySettlement{Date: day}, nil)
				m.sales.EXPECT().Sales(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				m.ledger.EXPECT().Movements(gomock.Any(), gomock.Any()).Return(nil, errors.New("db gone"))
			},
			wantErr: "listing movements: db gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tt.setupMock(m)

			_, err := m.service().Daily(context.Background(), day)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2026, 10, 18, 0, 0, 0, 0, jst)
	dir := filepath.Join(t.TempDir(), "reports")

	m := newMocks(ctrl)
	fixture(m, day)

	path, err := m.service().Export(context.Background(), day, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "daily_20261018.xlsx"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
