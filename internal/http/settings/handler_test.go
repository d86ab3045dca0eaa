package settings_test

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

	handler "github.com/MrJamesThe3rd/till/internal/http/settings"
	"github.com/MrJamesThe3rd/till/internal/settings"
)

func newRouter(repo settings.Repository) http.Handler {
	r := chi.NewRouter()
	handler.NewHandler(settings.NewService(repo)).Routes(r)

	return r
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	repo.EXPECT().ListSettings(gomock.Any()).Return([]settings.Setting{
		{Key: settings.KeyTaxRate, Value: "8", UpdatedAt: new(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)

	assert.Equal(t, "tax_rate", body[0]["key"])
	assert.Equal(t, "8", body[0]["value"])
	assert.Equal(t, false, body[0]["default"])

	assert.Equal(t, "low_stock_threshold", body[1]["key"])
	assert.Equal(t, "5", body[1]["value"])
	assert.Equal(t, true, body[1]["default"])
}

func TestHandler_Set(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		body       string
		setupMock  func(m *settings.MockRepository)
		wantStatus int
		wantValue  string
	}

	tests := []testCase{
		{
			name:   "NumberValue",
			target: "/settings/tax_rate",
			body:   `{"value":8}`,
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().UpsertSetting(gomock.Any(), settings.KeyTaxRate, "8").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantValue:  "8",
		},
		{
			name:   "StringValueNormalised",
			target: "/settings/low_stock_threshold",
			body:   `{"value":" 07 "}`,
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().UpsertSetting(gomock.Any(), settings.KeyLowStockThreshold, "7").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantValue:  "7",
		},
		{
			name:       "InvalidValue",
			target:     "/settings/tax_rate",
			body:       `{"value":"150"}`,
			setupMock:  func(m *settings.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownKey",
			target:     "/settings/currency",
			body:       `{"value":"JPY"}`,
			setupMock:  func(m *settings.MockRepository) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "MissingValue",
			target:     "/settings/tax_rate",
			body:       `{}`,
			setupMock:  func(m *settings.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := settings.NewMockRepository(ctrl)
			tc.setupMock(repo)

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tc.target, strings.NewReader(tc.body)))
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantValue != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.wantValue, body["value"])
			}
		})
	}
}
