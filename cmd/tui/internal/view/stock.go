package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateMove
	stockStateHistory
)

type movementForm struct {
	kind     inventory.MovementType
	quantity string
	reason   string
}

// StockModel lists items and records receipts, issues, disposals and stock counts.
type StockModel struct {
	CommonModel
	inventory *inventory.Service
	actor     string

	state   stockState
	table   table.Model
	history table.Model
	items   []*inventory.Item
	summary *inventory.Summary

	statusFilterIdx int
	filter          inventory.ListFilter

	form *huh.Form
	move *movementForm

	loading bool
	err     error
	status  string
}

var stockFilters = []struct {
	label  string
	status *inventory.Status
}{
	{"All", nil},
	{"Low stock", new(inventory.StatusLowStock)},
	{"Expiring", new(inventory.StatusExpiring)},
}

func NewStockModel(inv *inventory.Service, actor string) StockModel {
	columns := []table.Column{
		{Title: "Item", Width: 22},
		{Title: "Category", Width: 12},
		{Title: "Qty", Width: 10},
		{Title: "Reorder", Width: 8},
		{Title: "Cost", Width: 9},
		{Title: "Price", Width: 9},
		{Title: "Expiry", Width: 11},
		{Title: "Supplier", Width: 16},
	}

	historyColumns := []table.Column{
		{Title: "When", Width: 17},
		{Title: "Item", Width: 20},
		{Title: "Type", Width: 9},
		{Title: "Change", Width: 8},
		{Title: "Reason", Width: 22},
		{Title: "By", Width: 12},
	}

	return StockModel{
		inventory: inv,
		actor:     actor,
		table:     newTable(columns, 15),
		history:   newTable(historyColumns, 15),
		loading:   true,
	}
}

func (m StockModel) Title() string { return "Stock" }

func (m StockModel) ShortHelp() string {
	switch m.state {
	case stockStateMove:
		return "Navigate form | Esc: cancel"
	case stockStateHistory:
		return "Esc/h: back to items"
	}

	return "Esc: back | m: record movement | s: filter | h: history | r: refresh"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stockLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.items = msg.items
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case historyLoadMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading history: %v", msg.err)
			return m, nil
		}

		m.refreshHistory(msg.movements)

		return m, nil

	case movementSavedMsg:
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = describeMovement(msg.result)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		m.history.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateMove:
		return m.updateMove(msg)
	case stockStateHistory:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc", "h":
				m.state = stockStateBrowse
				m.table.Focus()

				return m, nil
			}
		}

		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(stockFilters)
			m.filter.Status = stockFilters[m.statusFilterIdx].status

			return m, m.loadCmd()
		case "h":
			m.state = stockStateHistory
			m.table.Blur()
			m.history.Focus()

			return m, m.historyCmd()
		case "m":
			return m.enterMove()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) enterMove() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	m.move = &movementForm{kind: inventory.MovementReceive}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[inventory.MovementType]().
				Key("type").
				Title("Movement").
				Options(
					huh.NewOption("Receive (入庫)", inventory.MovementReceive),
					huh.NewOption("Issue (出庫)", inventory.MovementIssue),
					huh.NewOption("Dispose (廃棄)", inventory.MovementDispose),
					huh.NewOption("Stock count (棚卸)", inventory.MovementAdjust),
				).
				Value(&m.move.kind),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Description("For a stock count, the quantity on the shelf").
				Value(&m.move.quantity).
				Validate(validateAmount),

			huh.NewInput().
				Key("reason").
				Title("Reason").
				Placeholder("delivery, expired, staff meal...").
				Value(&m.move.reason),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = stockStateMove
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateMove(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveMovementCmd()
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == stockStateHistory {
		return lipgloss.NewStyle().Padding(1).Render(
			"Recent movements\n\n" + boxed(m.history.View()) + "\n" + faintStyle.Render(m.ShortHelp()),
		)
	}

	header := fmt.Sprintf("Filter: [s] %s", activeStyle(stockFilters[m.statusFilterIdx].label))
	if m.summary != nil {
		header += fmt.Sprintf("   Items: %d | Low: %d | Expiring: %d | Stock value: %s",
			m.summary.TotalItems, m.summary.LowStockItems, m.summary.ExpiringItems, FormatYen(m.summary.StockValue))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == stockStateMove && m.form != nil {
		name := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.items) {
			name = m.items[idx].Name
		}

		panel := panelStyle.Width(48).Render(fmt.Sprintf("Record movement\n\n%s\n\n%s", name, m.form.View()))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		qty := fmt.Sprintf("%d %s", item.Quantity, item.Unit)
		if item.BelowReorder() {
			qty = "! " + qty
		}

		expiry := ""
		if item.ExpiryDate != nil {
			expiry = FormatDate(*item.ExpiryDate)
		}

		rows = append(rows, table.Row{
			item.Name,
			item.CategoryName,
			qty,
			fmt.Sprintf("%d", item.ReorderLevel),
			FormatYen(item.CostPrice),
			FormatYen(item.SellingPrice),
			expiry,
			item.Supplier,
		})
	}

	m.table.SetRows(rows)
}

func (m *StockModel) refreshHistory(movements []*inventory.Movement) {
	rows := make([]table.Row, 0, len(movements))
	for _, mv := range movements {
		rows = append(rows, table.Row{
			mv.CreatedAt.Local().Format("2006-01-02 15:04"),
			mv.ItemName,
			mv.Type.Label(),
			fmt.Sprintf("%+d", mv.Delta()),
			mv.Reason,
			mv.Actor,
		})
	}

	m.history.SetRows(rows)
}

func describeMovement(r *inventory.MovementResult) string {
	if r.Movement == nil {
		return fmt.Sprintf("No change, count matches %d", r.Quantity)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %d → %d", r.Movement.Type.Label(), r.Movement.ItemName, r.PreviousQuantity, r.Quantity)

	if r.BelowReorder {
		fmt.Fprintf(&b, " (at or below reorder level %d)", r.ReorderLevel)
	}

	return b.String()
}

// Messages

type stockLoadMsg struct {
	items   []*inventory.Item
	summary *inventory.Summary
	err     error
}

func (m StockModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.inventory.ListItems(ctx, filter)
		if err != nil {
			return stockLoadMsg{err: err}
		}

		summary, err := m.inventory.Summary(ctx)
		if err != nil {
			return stockLoadMsg{err: err}
		}

		return stockLoadMsg{items: items, summary: summary}
	}
}

type historyLoadMsg struct {
	movements []*inventory.Movement
	err       error
}

func (m StockModel) historyCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		movements, err := m.inventory.RecentMovements(ctx, inventory.MaxMovementLimit)

		return historyLoadMsg{movements: movements, err: err}
	}
}

type movementSavedMsg struct {
	result *inventory.MovementResult
	err    error
}

func (m StockModel) saveMovementCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	item := m.items[idx]
	move := *m.move

	return func() tea.Msg {
		qty, err := parseAmount(move.quantity)
		if err != nil {
			return movementSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.inventory.ApplyMovement(ctx, inventory.MovementParams{
			ItemID:   item.ID,
			Type:     move.kind,
			Quantity: qty,
			Reason:   move.reason,
			Actor:    m.actor,
		})

		return movementSavedMsg{result: result, err: err}
	}
}
