// Package catalog reads item catalogs exported from spreadsheets.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/till/internal/encoding"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

var ErrNoHeader = errors.New("no catalog header found: expected name, category and selling_price columns (or 商品名, カテゴリ, 売価)")

// Row is one data line. Item.CategoryID is left for the caller to resolve from Category.
type Row struct {
	Line     int
	Category string
	Item     inventory.ItemParams
	Err      error
}

type File struct {
	Charset string
	Profile string
	Rows    []Row
}

// Parse decodes the file to UTF-8, finds the header row and reads every line after it.
// A bad line is reported on its Row and does not stop the parse.
func Parse(r io.Reader) (*File, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		profile *Profile
		cols    colIndex
		rows    []Row
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if blank(record) {
			continue
		}

		if profile == nil {
			profile, cols = detectProfile(record)
			continue
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, parseRow(profile, cols, record, line))
	}

	if profile == nil {
		return nil, ErrNoHeader
	}

	return &File{Charset: charset, Profile: profile.Name, Rows: rows}, nil
}

// colIndex maps header names to their index in the row.
type colIndex map[string]int

func detectProfile(record []string) (*Profile, colIndex) {
	cols := make(colIndex)

	for i, cell := range record {
		name := normaliseHeader(cell)
		if name == "" {
			continue
		}

		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	for i := range profiles {
		if matchesProfile(&profiles[i], cols) {
			return &profiles[i], cols
		}
	}

	return nil, nil
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func normaliseHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	if alias, ok := headerAliases[s]; ok {
		return alias
	}

	return s
}

func parseRow(p *Profile, cols colIndex, record []string, line int) Row {
	cell := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	row := Row{
		Line:     line,
		Category: cell(p.CategoryCol),
		Item: inventory.ItemParams{
			Name:     cell(p.NameCol),
			Unit:     cell(p.UnitCol),
			Supplier: cell(p.SupplierCol),
		},
	}

	if row.Item.Unit == "" {
		row.Item.Unit = p.DefaultUnit
	}

	if row.Category == "" {
		row.Err = fmt.Errorf("%s is required", p.CategoryCol)
		return row
	}

	amounts := []struct {
		col   string
		dst   *int64
		parse func(string) (int64, error)
	}{
		{p.SellingCol, &row.Item.SellingPrice, parseYen},
		{p.CostCol, &row.Item.CostPrice, parseYen},
		{p.QuantityCol, &row.Item.Quantity, parseCount},
		{p.ReorderCol, &row.Item.ReorderLevel, parseCount},
	}

	for _, a := range amounts {
		v := cell(a.col)
		if v == "" {
			if a.col == p.SellingCol {
				row.Err = fmt.Errorf("%s is required", a.col)
				return row
			}

			continue
		}

		n, err := a.parse(v)
		if err != nil {
			row.Err = fmt.Errorf("%s: %w", a.col, err)
			return row
		}

		*a.dst = n
	}

	if v := cell(p.ExpiryCol); v != "" {
		expiry, err := parseDate(v)
		if err != nil {
			row.Err = fmt.Errorf("%s: %w", p.ExpiryCol, err)
			return row
		}

		row.Item.ExpiryDate = &expiry
	}

	return row
}

// sniffDelimiter picks comma, tab or semicolon by frequency over the first few non-empty lines.
func sniffDelimiter(data []byte) rune {
	const sample = 10

	counts := map[rune]int{}
	seen := 0

	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		for _, c := range []rune{',', '\t', ';'} {
			counts[c] += bytes.Count(line, []byte{byte(c)})
		}

		seen++
		if seen == sample {
			break
		}
	}

	best := ','
	for _, c := range []rune{'\t', ';'} {
		if counts[c] > counts[best] {
			best = c
		}
	}

	return best
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
