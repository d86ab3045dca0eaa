package settlement_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	handler "github.com/MrJamesThe3rd/till/internal/http/settlement"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestHandler(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, jst)
	nextDay := today.AddDate(0, 0, 1)

	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *settlement.MockRepository)
		wantStatus int
		verify     func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name:   "GetToday",
			method: http.MethodGet,
			target: "/settlements/today",
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), today, nextDay).Return(int64(300), nil)
				m.EXPECT().GetSettlement(gomock.Any(), today).Return(nil, settlement.ErrNotFound)
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "2026-10-19", body["date"])
				assert.EqualValues(t, 300, body["expected_cash"])
				assert.Equal(t, false, body["saved"])
				assert.Nil(t, body["actual_cash"])
			},
		},
		{
			name:       "BadDate",
			method:     http.MethodGet,
			target:     "/settlements/19-10-2026",
			setupMock:  func(m *settlement.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "SetFloat",
			method: http.MethodPut,
			target: "/settlements/2026-10-19/float",
			body:   `{"amount":1000}`,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), today, nextDay).Return(int64(300), nil)
				m.EXPECT().
					SaveOpeningFloat(gomock.Any(), today, int64(1000), int64(300)).
					Return(&settlement.DailySettlement{OpeningCashFloat: 1000, TotalSalesCash: 300, ExpectedCash: 1300}, nil)
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, 1300, body["expected_cash"])
				assert.Equal(t, true, body["saved"])
				assert.Equal(t, false, body["settled"])
			},
		},
		{
			name:       "SetFloatMissingAmount",
			method:     http.MethodPut,
			target:     "/settlements/today/float",
			body:       `{}`,
			setupMock:  func(m *settlement.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "SettleByDenomination",
			method: http.MethodPut,
			target: "/settlements/today/actual",
			body:   `{"denominations":{"1000":1,"500":1}}`,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), today, nextDay).Return(int64(300), nil)
				m.EXPECT().
					SaveActualCash(gomock.Any(), today, int64(1500), int64(300)).
					Return(&settlement.DailySettlement{
						OpeningCashFloat: 1000,
						TotalSalesCash:   300,
						ExpectedCash:     1300,
						ActualCash:       new(int64(1500)),
						Discrepancy:      new(int64(200)),
					}, nil)
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, 1500, body["actual_cash"])
				assert.EqualValues(t, 200, body["discrepancy"])
				assert.Equal(t, true, body["settled"])
			},
		},
		{
			name:       "SettleUnknownDenomination",
			method:     http.MethodPut,
			target:     "/settlements/today/actual",
			body:       `{"denominations":{"2000":1}}`,
			setupMock:  func(m *settlement.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "SettleBeforeFloat",
			method: http.MethodPut,
			target: "/settlements/today/actual",
			body:   `{"amount":1500}`,
			setupMock: func(m *settlement.MockRepository) {
				m.EXPECT().SalesTotal(gomock.Any(), today, nextDay).Return(int64(0), nil)
				m.EXPECT().SaveActualCash(gomock.Any(), today, int64(1500), int64(0)).Return(nil, settlement.ErrNotFound)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "SettleBothForms",
			method:     http.MethodPut,
			target:     "/settlements/today/actual",
			body:       `{"amount":1500,"denominations":{"1000":1}}`,
			setupMock:  func(m *settlement.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := settlement.NewMockRepository(ctrl)
			tc.setupMock(repo)

			svc := settlement.NewService(repo,
				settlement.WithLocation(jst),
				settlement.WithClock(func() time.Time { return time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC) }),
			)

			r := chi.NewRouter()
			handler.NewHandler(svc).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.verify != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tc.verify(t, body)
			}
		})
	}
}
