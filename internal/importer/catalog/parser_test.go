package catalog_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/MrJamesThe3rd/till/internal/encoding"
	"github.com/MrJamesThe3rd/till/internal/importer/catalog"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name        string
		content     string
		wantProfile string
		wantLen     int
		verify      func(t *testing.T, rows []catalog.Row)
		wantErr     error
	}

	tests := []testCase{
		{
			name: "EnglishHeader",
			content: `name,category,quantity,unit,cost_price,selling_price,reorder_level,supplier,expiry_date
Coffee,Drinks,50,cup,120,300,10,Blue Bottle,
Sandwich,Food,30,pcs,"1,200",¥450,5,,2026-10-21
`,
			wantProfile: "english",
			wantLen:     2,
			verify: func(t *testing.T, rows []catalog.Row) {
				coffee := rows[0]
				require.NoError(t, coffee.Err)
				assert.Equal(t, 2, coffee.Line)
				assert.Equal(t, "Drinks", coffee.Category)
				assert.Equal(t, "Coffee", coffee.Item.Name)
				assert.Equal(t, int64(50), coffee.Item.Quantity)
				assert.Equal(t, "cup", coffee.Item.Unit)
				assert.Equal(t, int64(120), coffee.Item.CostPrice)
				assert.Equal(t, int64(300), coffee.Item.SellingPrice)
				assert.Equal(t, int64(10), coffee.Item.ReorderLevel)
				assert.Equal(t, "Blue Bottle", coffee.Item.Supplier)
				assert.Nil(t, coffee.Item.ExpiryDate)

				sandwich := rows[1]
				require.NoError(t, sandwich.Err)
				assert.Equal(t, int64(1200), sandwich.Item.CostPrice)
				assert.Equal(t, int64(450), sandwich.Item.SellingPrice)
				require.NotNil(t, sandwich.Item.ExpiryDate)
				assert.True(t, sandwich.Item.ExpiryDate.Equal(time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)))
			},
		},
		{
			name: "JapaneseHeaderWithPreamble",
			content: "店舗在庫一覧\n\n" +
				"商品名\tカテゴリー\t在庫数\t販売価格\t賞味期限\n" +
				"ショートケーキ\tフード\t２０\t５００円\t2026/10/23\n",
			wantProfile: "japanese",
			wantLen:     1,
			verify: func(t *testing.T, rows []catalog.Row) {
				cake := rows[0]
				require.NoError(t, cake.Err)
				assert.Equal(t, 4, cake.Line)
				assert.Equal(t, "フード", cake.Category)
				assert.Equal(t, int64(20), cake.Item.Quantity)
				assert.Equal(t, int64(500), cake.Item.SellingPrice)
				assert.Equal(t, "個", cake.Item.Unit)
				require.NotNil(t, cake.Item.ExpiryDate)
				assert.Equal(t, "2026-10-23", cake.Item.ExpiryDate.Format(time.DateOnly))
			},
		},
		{
			name: "BadLinesAreReported",
			content: `Name;Category;Price;Qty;Expiry
Tea;Drinks;abc;1;
Juice;;200;1;
Water;Drinks;100;-2;
Milk;Drinks;150;1.5;
Scone;Food;280;4;tomorrow
Cola;Drinks;180;12;
`,
			wantProfile: "english",
			wantLen:     6,
			verify: func(t *testing.T, rows []catalog.Row) {
				assert.ErrorContains(t, rows[0].Err, "selling_price")
				assert.ErrorContains(t, rows[1].Err, "category is required")
				assert.ErrorContains(t, rows[2].Err, "must not be negative")
				assert.ErrorContains(t, rows[3].Err, "not a whole number")
				assert.ErrorContains(t, rows[4].Err, "expiry_date")
				assert.NoError(t, rows[5].Err)
				assert.Equal(t, 7, rows[5].Line)
			},
		},
		{
			name:        "HeaderOnly",
			content:     "name,category,selling_price\n",
			wantProfile: "english",
			wantLen:     0,
		},
		{
			name:    "NoHeader",
			content: "foo,bar\n1,2\n",
			wantErr: catalog.ErrNoHeader,
		},
		{
			name:    "Empty",
			content: "",
			wantErr: catalog.ErrNoHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Parse(strings.NewReader(tt.content))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantProfile, got.Profile)
			assert.Len(t, got.Rows, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got.Rows)
			}
		})
	}
}

func TestParse_ShiftJIS(t *testing.T) {
	content := "商品名,カテゴリ,数量,単位,原価,売価\n" +
		"コーヒー,ドリンク,50,杯,120,300\n" +
		"紅茶,ドリンク,60,杯,80,250\n"

	input, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)

	got, err := catalog.Parse(bytes.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, encoding.ShiftJIS, got.Charset)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "コーヒー", got.Rows[0].Item.Name)
	assert.Equal(t, "杯", got.Rows[0].Item.Unit)
	assert.Equal(t, int64(250), got.Rows[1].Item.SellingPrice)
}
