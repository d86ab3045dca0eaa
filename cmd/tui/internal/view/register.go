package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/settings"
)

type registerState int

const (
	registerStateBrowse registerState = iota
	registerStatePay
	registerStateReceipt
)

type payForm struct {
	cash string
}

// RegisterModel is the till screen: pick items into a cart and take cash.
type RegisterModel struct {
	CommonModel
	inventory *inventory.Service
	checkout  *checkout.Service
	settings  *settings.Service
	actor     string

	state   registerState
	table   table.Model
	items   []*inventory.Item
	taxRate decimal.Decimal
	cart    checkout.Cart

	form    *huh.Form
	pay     *payForm
	receipt *checkout.Receipt

	loading bool
	err     error
	status  string
}

func NewRegisterModel(inv *inventory.Service, co *checkout.Service, st *settings.Service, actor string) RegisterModel {
	columns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 8},
		{Title: "In cart", Width: 8},
	}

	return RegisterModel{
		inventory: inv,
		checkout:  co,
		settings:  st,
		actor:     actor,
		table:     newTable(columns, 15),
		loading:   true,
	}
}

func (m RegisterModel) Title() string { return "Register" }

func (m RegisterModel) ShortHelp() string {
	switch m.state {
	case registerStatePay:
		return "Enter: take payment | Esc: back to cart"
	case registerStateReceipt:
		return "Enter: next customer"
	}

	return "Enter/+: add | -: remove | x: clear | c: checkout | Esc: back"
}

func (m RegisterModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.taxRate = msg.taxRate
		m.refreshTable()

		return m, nil

	case checkoutResultMsg:
		if msg.err != nil {
			m.state = registerStateBrowse
			m.form = nil
			m.status = checkoutErrorText(msg.err)
			m.table.Focus()

			return m, m.loadCmd()
		}

		m.receipt = msg.receipt
		m.state = registerStateReceipt

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 14)
		return m, nil
	}

	switch m.state {
	case registerStateBrowse:
		return m.updateBrowse(msg)
	case registerStatePay:
		return m.updatePay(msg)
	case registerStateReceipt:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.cart = checkout.Cart{}
			m.receipt = nil
			m.status = ""
			m.state = registerStateBrowse
			m.table.Focus()

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m RegisterModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter", "+":
			m.addSelected()
			return m, nil
		case "-":
			if item := m.selected(); item != nil {
				m.cart.Remove(item.ID)
				m.status = ""
				m.refreshTable()
			}

			return m, nil
		case "x":
			m.cart = checkout.Cart{}
			m.status = ""
			m.refreshTable()

			return m, nil
		case "c":
			if m.cart.Empty() {
				m.status = "Cart is empty"
				return m, nil
			}

			return m.enterPay()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *RegisterModel) addSelected() {
	item := m.selected()
	if item == nil {
		return
	}

	err := m.cart.Add(item.ID, item.Name, item.SellingPrice, 1, item.Quantity)
	if err != nil {
		m.status = checkoutErrorText(err)
		return
	}

	m.status = ""
	m.refreshTable()
}

func (m RegisterModel) selected() *inventory.Item {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m RegisterModel) totals() (checkout.Totals, error) {
	return checkout.ComputeTotals(m.cart.Lines, m.taxRate)
}

func (m RegisterModel) enterPay() (tea.Model, tea.Cmd) {
	t, err := m.totals()
	if err != nil {
		m.status = checkoutErrorText(err)
		return m, nil
	}

	total := t.Total
	m.pay = &payForm{cash: strconv.FormatInt(total, 10)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("cash").
				Title("Cash received").
				Description("Total " + FormatYen(total)).
				Value(&m.pay.cash).
				Validate(func(s string) error {
					n, err := parseAmount(s)
					if err != nil {
						return err
					}

					if n < total {
						return fmt.Errorf("short by %s", FormatYen(total-n))
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = registerStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m RegisterModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = registerStateBrowse
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

	cash, err := parseAmount(m.pay.cash)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	return m, m.checkoutCmd(cash)
}

func (m *RegisterModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		inCart := ""
		if n := m.cart.Quantity(item.ID); n > 0 {
			inCart = strconv.FormatInt(n, 10)
		}

		rows = append(rows, table.Row{
			item.Name,
			FormatYen(item.SellingPrice),
			fmt.Sprintf("%d %s", item.Quantity, item.Unit),
			inCart,
		})
	}

	m.table.SetRows(rows)
}

func (m RegisterModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading items...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == registerStateReceipt {
		return lipgloss.NewStyle().Padding(1).Render(m.viewReceipt())
	}

	side := m.viewCart()
	if m.state == registerStatePay && m.form != nil {
		side = lipgloss.JoinVertical(lipgloss.Left, side, "", m.form.View())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		boxed(m.table.View()),
		panelStyle.Width(40).Render(side),
	)

	if m.status != "" {
		content = warnStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m RegisterModel) viewCart() string {
	if m.cart.Empty() {
		return "Cart\n\n" + faintStyle.Render("(empty)")
	}

	var b strings.Builder

	b.WriteString("Cart\n\n")

	for _, l := range m.cart.Lines {
		fmt.Fprintf(&b, "%-16s x%-3d %10s\n", l.Name, l.Quantity, FormatYen(l.UnitPrice*l.Quantity))
	}

	t, err := m.totals()
	if err != nil {
		b.WriteString("\n" + errorStyle.Render(checkoutErrorText(err)))
		return b.String()
	}

	fmt.Fprintf(&b, "\n%-21s %10s\n", "Subtotal", FormatYen(t.Subtotal))
	fmt.Fprintf(&b, "%-21s %10s\n", "Tax "+m.taxRate.String()+"%", FormatYen(t.Tax))
	fmt.Fprintf(&b, "%-21s %10s", "Total", FormatYen(t.Total))

	return b.String()
}

func (m RegisterModel) viewReceipt() string {
	sale := m.receipt.Sale

	var b strings.Builder

	b.WriteString(okStyle.Render("Sale complete") + "\n\n")

	for _, li := range sale.Lines {
		fmt.Fprintf(&b, "%-16s x%-3d %10s\n", li.Name, li.Quantity, FormatYen(li.Amount()))
	}

	fmt.Fprintf(&b, "\n%-21s %10s\n", "Subtotal", FormatYen(sale.Subtotal))
	fmt.Fprintf(&b, "%-21s %10s\n", "Tax "+sale.TaxRate.String()+"%", FormatYen(sale.TaxAmount))
	fmt.Fprintf(&b, "%-21s %10s\n", "Total", FormatYen(sale.Total))
	fmt.Fprintf(&b, "%-21s %10s\n", "Cash", FormatYen(sale.CashReceived))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-21s %10s", "Change", FormatYen(sale.ChangeGiven))))

	if len(m.receipt.LowStock) > 0 {
		b.WriteString("\n\n" + warnStyle.Render("Low stock:") + "\n")

		for _, n := range m.receipt.LowStock {
			fmt.Fprintf(&b, "  %s: %d left\n", n.Name, n.Quantity)
		}
	}

	b.WriteString("\n\n" + faintStyle.Render(m.ShortHelp()))

	return panelStyle.Render(b.String())
}

func checkoutErrorText(err error) string {
	var stockErr *checkout.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		return stockErr.Error()
	case errors.Is(err, checkout.ErrInsufficientPayment):
		return "Cash received is less than the total"
	case errors.Is(err, checkout.ErrAmountTooLarge):
		return "Cart total is too large"
	}

	return fmt.Sprintf("Checkout failed: %v", err)
}

// Messages

type registerLoadMsg struct {
	items   []*inventory.Item
	taxRate decimal.Decimal
	err     error
}

func (m RegisterModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.inventory.ListItems(ctx, inventory.ListFilter{})
		if err != nil {
			return registerLoadMsg{err: err}
		}

		rate, err := m.settings.TaxRate(ctx)
		if err != nil {
			return registerLoadMsg{err: err}
		}

		return registerLoadMsg{items: items, taxRate: rate}
	}
}

type checkoutResultMsg struct {
	receipt *checkout.Receipt
	err     error
}

func (m RegisterModel) checkoutCmd(cash int64) tea.Cmd {
	cart := checkout.Cart{Lines: append([]checkout.Line(nil), m.cart.Lines...)}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		receipt, err := m.checkout.Checkout(ctx, cart, cash, m.actor)

		return checkoutResultMsg{receipt: receipt, err: err}
	}
}
