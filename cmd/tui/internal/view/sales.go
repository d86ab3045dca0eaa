package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/checkout"
)

type salesState int

const (
	salesStateTimeframe salesState = iota
	salesStateList
)

// SalesModel browses committed sales over a range of days.
type SalesModel struct {
	CommonModel
	checkout *checkout.Service

	state  salesState
	picker TimeframePicker
	table  table.Model
	label  string
	sales  []*checkout.Sale

	err error
}

func NewSalesModel(svc *checkout.Service, loc *time.Location) SalesModel {
	columns := []table.Column{
		{Title: "Time", Width: 17},
		{Title: "Items", Width: 34},
		{Title: "Total", Width: 10},
		{Title: "Cash", Width: 10},
		{Title: "Change", Width: 10},
		{Title: "By", Width: 12},
	}

	return SalesModel{
		checkout: svc,
		picker:   NewTimeframePicker(loc),
		table:    newTable(columns, 15),
	}
}

func (m SalesModel) Title() string { return "Sales" }

func (m SalesModel) ShortHelp() string {
	if m.state == salesStateList {
		return "Esc: change timeframe"
	}

	return "Esc: back | Enter: select"
}

func (m SalesModel) Init() tea.Cmd {
	return nil
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.label = msg.Label
		m.state = salesStateList

		return m, m.loadCmd(msg.Start, msg.End)

	case salesLoadMsg:
		m.err = msg.err
		m.sales = msg.sales
		m.refreshTable()

		return m, nil
	}

	switch m.state {
	case salesStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case salesStateList:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = salesStateTimeframe
			m.picker.Reset()

			return m, nil
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *SalesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.sales))
	for _, s := range m.sales {
		names := make([]string, len(s.Lines))
		for i, li := range s.Lines {
			names[i] = fmt.Sprintf("%s x%d", li.Name, li.Quantity)
		}

		rows = append(rows, table.Row{
			s.CreatedAt.In(m.picker.loc).Format("2006-01-02 15:04"),
			strings.Join(names, ", "),
			FormatYen(s.Total),
			FormatYen(s.CashReceived),
			FormatYen(s.ChangeGiven),
			s.Actor,
		})
	}

	m.table.SetRows(rows)
}

func (m SalesModel) View() string {
	if m.state == salesStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	var total, tax int64
	for _, s := range m.sales {
		total += s.Total
		tax += s.TaxAmount
	}

	header := fmt.Sprintf("%s   %d sales | Total %s | Tax %s",
		activeStyle(m.label), len(m.sales), FormatYen(total), FormatYen(tax))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(m.table.View()),
			faintStyle.Render(m.ShortHelp()),
		),
	)
}

type salesLoadMsg struct {
	sales []*checkout.Sale
	err   error
}

func (m SalesModel) loadCmd(start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sales, err := m.checkout.Sales(ctx, start, end)

		return salesLoadMsg{sales: sales, err: err}
	}
}
