package catalog

// Profile names the header of each catalog column for one spreadsheet layout.
// Optional columns may be missing from the file.
type Profile struct {
	Name        string
	NameCol     string
	CategoryCol string
	SellingCol  string
	QuantityCol string
	UnitCol     string
	CostCol     string
	ReorderCol  string
	SupplierCol string
	ExpiryCol   string
	DefaultUnit string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.CategoryCol, p.SellingCol}
}

// profiles are tried in order against each row until one matches a header.
var profiles = []Profile{
	{
		Name:        "english",
		NameCol:     "name",
		CategoryCol: "category",
		SellingCol:  "selling_price",
		QuantityCol: "quantity",
		UnitCol:     "unit",
		CostCol:     "cost_price",
		ReorderCol:  "reorder_level",
		SupplierCol: "supplier",
		ExpiryCol:   "expiry_date",
		DefaultUnit: "pcs",
	},
	{
		Name:        "japanese",
		NameCol:     "商品名",
		CategoryCol: "カテゴリ",
		SellingCol:  "売価",
		QuantityCol: "数量",
		UnitCol:     "単位",
		CostCol:     "原価",
		ReorderCol:  "発注点",
		SupplierCol: "仕入先",
		ExpiryCol:   "賞味期限",
		DefaultUnit: "個",
	},
}

// headerAliases folds alternative spellings onto the canonical profile header.
var headerAliases = map[string]string{
	"item":          "name",
	"item name":     "name",
	"price":         "selling_price",
	"selling price": "selling_price",
	"qty":           "quantity",
	"cost":          "cost_price",
	"cost price":    "cost_price",
	"reorder level": "reorder_level",
	"expiry":        "expiry_date",
	"expiry date":   "expiry_date",

	"品名":    "商品名",
	"カテゴリー": "カテゴリ",
	"分類":    "カテゴリ",
	"販売価格":  "売価",
	"在庫数":   "数量",
	"仕入価格":  "原価",
	"仕入れ先":  "仕入先",
	"消費期限":  "賞味期限",
}
