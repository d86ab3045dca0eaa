package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	handler "github.com/MrJamesThe3rd/till/internal/http/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

func TestHandler_Checkout(t *testing.T) {
	coffee := uuid.New()

	type mocks struct {
		repo     *checkout.MockRepository
		tx       *checkout.MockSaleTx
		settings *checkout.MockSettings
	}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
		verify     func(t *testing.T, body map[string]any)
	}

	coffeeLine := `{"item_id":"` + coffee.String() + `","name":"Coffee","quantity":2,"unit_price":300}`

	tests := []testCase{
		{
			name: "Success",
			body: `{"lines":[` + coffeeLine + `],"cash_received":1000}`,
			setupMock: func(m mocks) {
				m.settings.EXPECT().TaxRate(gomock.Any()).Return(decimal.NewFromInt(10), nil)
				m.repo.EXPECT().BeginSale(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().
					DecrementStock(gomock.Any(), coffee, int64(2)).
					Return(&checkout.StockLevel{ItemID: coffee, Name: "Coffee", Quantity: 48}, nil)
				m.tx.EXPECT().InsertSale(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
				m.settings.EXPECT().LowStockThreshold(gomock.Any()).Return(int64(5), nil)
				m.repo.EXPECT().
					StockLevels(gomock.Any(), []uuid.UUID{coffee}).
					Return([]checkout.StockLevel{{ItemID: coffee, Name: "Coffee", Quantity: 48}}, nil)
			},
			wantStatus: http.StatusCreated,
			verify: func(t *testing.T, body map[string]any) {
				sale := body["sale"].(map[string]any)
				assert.EqualValues(t, 600, sale["subtotal"])
				assert.EqualValues(t, 60, sale["tax_amount"])
				assert.EqualValues(t, 660, sale["total"])
				assert.EqualValues(t, 340, sale["change_given"])
				assert.Equal(t, "10", sale["tax_rate"])
				assert.Empty(t, body["low_stock"])
			},
		},
		{
			name:       "EmptyCart",
			body:       `{"lines":[],"cash_received":1000}`,
			setupMock:  func(m mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "InsufficientPayment",
			body: `{"lines":[` + coffeeLine + `],"cash_received":659}`,
			setupMock: func(m mocks) {
				m.settings.EXPECT().TaxRate(gomock.Any()).Return(decimal.NewFromInt(10), nil)
			},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name: "InsufficientStock",
			body: `{"lines":[` + coffeeLine + `],"cash_received":1000}`,
			setupMock: func(m mocks) {
				m.settings.EXPECT().TaxRate(gomock.Any()).Return(decimal.NewFromInt(10), nil)
				m.repo.EXPECT().BeginSale(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().
					DecrementStock(gomock.Any(), coffee, int64(2)).
					Return(nil, inventory.ErrInsufficientStock)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "insufficient stock for Coffee", body["error"])
			},
		},
		{
			name: "TotalTooLarge",
			body: `{"lines":[{"item_id":"` + coffee.String() + `","name":"Coffee","quantity":4,"unit_price":4611686018427387904}],"cash_received":0}`,
			setupMock: func(m mocks) {
				m.settings.EXPECT().TaxRate(gomock.Any()).Return(decimal.NewFromInt(10), nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedBody",
			body:       `[`,
			setupMock:  func(m mocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks{
				repo:     checkout.NewMockRepository(ctrl),
				tx:       checkout.NewMockSaleTx(ctrl),
				settings: checkout.NewMockSettings(ctrl),
			}
			tc.setupMock(m)

			r := chi.NewRouter()
			handler.NewHandler(checkout.NewService(m.repo, m.settings)).Routes(r)

			req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.verify != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tc.verify(t, body)
			}
		})
	}
}

func TestHandler_ListSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := checkout.NewMockRepository(ctrl)
	repo.EXPECT().
		ListSales(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*checkout.Sale{{Total: 660, TaxRate: decimal.NewFromInt(10)}}, nil)

	r := chi.NewRouter()
	handler.NewHandler(checkout.NewService(repo, checkout.NewMockSettings(ctrl))).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales?from=2026-10-18T00:00:00%2B09:00", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.EqualValues(t, 660, body[0]["total"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales?to=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
