package report_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	handler "github.com/MrJamesThe3rd/till/internal/http/report"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/report"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

var jst = time.FixedZone("JST", 9*60*60)

func newRouter(ctrl *gomock.Controller, setup func(sales *report.MockSales, ledger *report.MockLedger, st *report.MockSettlements)) http.Handler {
	sales := report.NewMockSales(ctrl)
	ledger := report.NewMockLedger(ctrl)
	st := report.NewMockSettlements(ctrl)
	setup(sales, ledger, st)

	days := settlement.NewService(nil,
		settlement.WithLocation(jst),
		settlement.WithClock(func() time.Time { return time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC) }),
	)

	r := chi.NewRouter()
	handler.NewHandler(report.NewService(sales, ledger, st), days).Routes(r)

	return r
}

func TestHandler_Daily(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, jst)
	next := day.AddDate(0, 0, 1)

	ctrl := gomock.NewController(t)
	h := newRouter(ctrl, func(sales *report.MockSales, ledger *report.MockLedger, st *report.MockSettlements) {
		st.EXPECT().Get(gomock.Any(), day).Return(&settlement.DailySettlement{Date: day, OpeningCashFloat: 1000, ExpectedCash: 1000}, nil)
		sales.EXPECT().Sales(gomock.Any(), day, next).Return([]*checkout.Sale{}, nil)
		ledger.EXPECT().Movements(gomock.Any(), gomock.Any()).Return([]*inventory.Movement{}, nil)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/daily?date=2026-10-18", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="daily_20261018.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Settlement")
}

func TestHandler_Daily_Errors(t *testing.T) {
	t.Run("BadDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := newRouter(ctrl, func(*report.MockSales, *report.MockLedger, *report.MockSettlements) {})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/daily?date=yesterday", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SourceFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := newRouter(ctrl, func(_ *report.MockSales, _ *report.MockLedger, st *report.MockSettlements) {
			st.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/daily", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
