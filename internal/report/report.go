package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetSales      = "Sales"
	sheetMovements  = "Movements"
	sheetSettlement = "Settlement"
)

// Daily is everything that happened on one business day.
type Daily struct {
	Date       time.Time
	Sales      []*checkout.Sale
	Movements  []*inventory.Movement // oldest first
	Settlement *settlement.DailySettlement
}

// Filename is the suggested name for the exported workbook.
func (d *Daily) Filename() string {
	return fmt.Sprintf("daily_%s.xlsx", d.Date.Format("20060102"))
}

// WriteXLSX renders the report as a workbook with one sheet per section.
func (d *Daily) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSales); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for _, name := range []string{sheetMovements, sheetSettlement} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"5A3E8C"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	yen, err := f.NewStyle(&excelize.Style{CustomNumFmt: new("¥#,##0")})
	if err != nil {
		return fmt.Errorf("creating currency style: %w", err)
	}

	sw := &sheetWriter{f: f, header: header, yen: yen}

	sw.table(sheetSales,
		[]string{"Time", "Sale", "Items", "Subtotal", "Tax rate (%)", "Tax", "Total", "Cash", "Change", "Actor"},
		[]float64{10, 38, 40, 12, 12, 10, 12, 12, 12, 14},
		[]int{3, 5, 6, 7, 8}, // yen columns, 0-based
		d.salesRows(),
	)

	sw.table(sheetMovements,
		[]string{"Time", "Item", "Type", "Quantity", "Unit", "Reason", "Actor", "Sale"},
		[]float64{10, 24, 10, 10, 8, 32, 14, 38},
		nil,
		d.movementRows(),
	)

	sw.table(sheetSettlement,
		[]string{"Date", "Opening float", "Sales", "Expected", "Actual", "Discrepancy"},
		[]float64{12, 14, 12, 12, 12, 14},
		[]int{1, 2, 3, 4, 5},
		d.settlementRows(),
	)

	if sw.err != nil {
		return sw.err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func (d *Daily) salesRows() [][]any {
	rows := make([][]any, 0, len(d.Sales))

	for _, s := range d.Sales {
		items := make([]string, 0, len(s.Lines))
		for _, l := range s.Lines {
			items = append(items, fmt.Sprintf("%s x%d", l.Name, l.Quantity))
		}

		rate, _ := s.TaxRate.Float64()

		rows = append(rows, []any{
			s.CreatedAt.In(d.Date.Location()).Format(time.TimeOnly),
			s.ID.String(),
			strings.Join(items, ", "),
			s.Subtotal,
			rate,
			s.TaxAmount,
			s.Total,
			s.CashReceived,
			s.ChangeGiven,
			s.Actor,
		})
	}

	return rows
}

func (d *Daily) movementRows() [][]any {
	rows := make([][]any, 0, len(d.Movements))

	for _, m := range d.Movements {
		sale := ""
		if m.SaleID != nil {
			sale = m.SaleID.String()
		}

		rows = append(rows, []any{
			m.CreatedAt.In(d.Date.Location()).Format(time.TimeOnly),
			m.ItemName,
			m.Type.Label(),
			m.Delta(),
			m.ItemUnit,
			m.Reason,
			m.Actor,
			sale,
		})
	}

	return rows
}

func (d *Daily) settlementRows() [][]any {
	st := d.Settlement
	if st == nil {
		return nil
	}

	row := []any{d.Date.Format(time.DateOnly), st.OpeningCashFloat, st.TotalSalesCash, st.ExpectedCash, "", ""}

	if st.ActualCash != nil {
		row[4] = *st.ActualCash
	}

	if st.Discrepancy != nil {
		row[5] = *st.Discrepancy
	}

	return [][]any{row}
}

// sheetWriter keeps the first error so table layout code stays linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	yen    int
	err    error
}

func (sw *sheetWriter) table(sheet string, headers []string, widths []float64, yenCols []int, rows [][]any) {
	if sw.err != nil {
		return
	}

	set := func(err error) {
		if err != nil && sw.err == nil {
			sw.err = fmt.Errorf("writing sheet %s: %w", sheet, err)
		}
	}

	set(sw.f.SetSheetRow(sheet, "A1", &headers))

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	set(err)
	set(sw.f.SetCellStyle(sheet, "A1", last, sw.header))

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		set(err)
		set(sw.f.SetColWidth(sheet, col, col, width))
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		set(err)
		set(sw.f.SetSheetRow(sheet, cell, &row))
	}

	if len(rows) > 0 {
		for _, c := range yenCols {
			top, err := excelize.CoordinatesToCellName(c+1, 2)
			set(err)
			bottom, err := excelize.CoordinatesToCellName(c+1, len(rows)+1)
			set(err)
			set(sw.f.SetCellStyle(sheet, top, bottom, sw.yen))
		}
	}

	set(sw.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}))
}
