package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type settlementState int

const (
	settlementStateView settlementState = iota
	settlementStateFloat
	settlementStateCount
)

// SettlementModel shows today's cash drawer and records the opening float and closing count.
type SettlementModel struct {
	CommonModel
	settlement *settlement.Service

	state   settlementState
	current *settlement.DailySettlement

	form   *huh.Form
	amount *string
	counts []*string // parallel to settlement.Denominations

	loading bool
	err     error
	status  string
}

func NewSettlementModel(svc *settlement.Service) SettlementModel {
	return SettlementModel{settlement: svc, loading: true}
}

func (m SettlementModel) Title() string { return "Cash Settlement" }

func (m SettlementModel) ShortHelp() string {
	if m.state != settlementStateView {
		return "Navigate form | Esc: cancel"
	}

	return "f: opening float | c: count drawer | r: refresh | Esc: back"
}

func (m SettlementModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettlementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settlementLoadMsg:
		m.loading = false
		m.err = msg.err
		m.current = msg.settlement

		return m, nil

	case settlementSavedMsg:
		m.state = settlementStateView
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.current = msg.settlement
		m.status = "Saved"

		return m, nil
	}

	if m.state != settlementStateView {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			return m.enterFloat()
		case "c":
			if m.current == nil || !m.current.Saved {
				m.status = "Set the opening float first"
				return m, nil
			}

			return m.enterCount()
		}
	}

	return m, nil
}

func (m SettlementModel) enterFloat() (tea.Model, tea.Cmd) {
	value := ""
	if m.current != nil && m.current.Saved {
		value = strconv.FormatInt(m.current.OpeningCashFloat, 10)
	}

	m.amount = &value

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("float").
				Title("Opening cash float").
				Description("Cash in the drawer before the first sale").
				Value(m.amount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = settlementStateFloat

	return m, m.form.Init()
}

func (m SettlementModel) enterCount() (tea.Model, tea.Cmd) {
	m.counts = make([]*string, len(settlement.Denominations))
	fields := make([]huh.Field, len(settlement.Denominations))

	for i, d := range settlement.Denominations {
		value := "0"
		m.counts[i] = &value
		fields[i] = huh.NewInput().
			Key(strconv.FormatInt(d, 10)).
			Title(FormatYen(d)).
			Inline(true).
			Value(m.counts[i]).
			Validate(validateAmount)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(30).WithShowHelp(false)
	m.state = settlementStateCount

	return m, m.form.Init()
}

func (m SettlementModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = settlementStateView
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == settlementStateFloat {
		return m, m.saveFloatCmd(*m.amount)
	}

	counts := make(map[int64]int64, len(settlement.Denominations))
	for i, d := range settlement.Denominations {
		n, err := parseAmount(*m.counts[i])
		if err != nil {
			m.status = fmt.Sprintf("%s: %v", FormatYen(d), err)
			return m, nil
		}

		counts[d] = n
	}

	return m, m.settleCmd(counts)
}

func (m SettlementModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settlement...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	content := panelStyle.Width(44).Render(m.viewSummary())

	if m.state != settlementStateView && m.form != nil {
		title := "Opening float"
		if m.state == settlementStateCount {
			title = "Count the drawer"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Render(title+"\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m SettlementModel) viewSummary() string {
	st := m.current
	if st == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Settlement for %s\n\n", FormatDate(st.Date))

	if !st.Saved {
		b.WriteString(warnStyle.Render("Opening float not set") + "\n\n")
	}

	fmt.Fprintf(&b, "%-18s %12s\n", "Opening float", FormatYen(st.OpeningCashFloat))
	fmt.Fprintf(&b, "%-18s %12s\n", "Cash sales", FormatYen(st.TotalSalesCash))
	fmt.Fprintf(&b, "%-18s %12s\n", "Expected in drawer", FormatYen(st.ExpectedCash))

	if !st.Settled() {
		fmt.Fprintf(&b, "%-18s %12s", "Counted", "-")
		return b.String()
	}

	fmt.Fprintf(&b, "%-18s %12s\n", "Counted", FormatYen(*st.ActualCash))

	diff := *st.Discrepancy
	line := fmt.Sprintf("%-18s %12s", "Difference", FormatYen(diff))

	switch {
	case diff == 0:
		b.WriteString(okStyle.Render(line))
	case diff > 0:
		b.WriteString(warnStyle.Render(line + " over"))
	default:
		b.WriteString(errorStyle.Render(line + " short"))
	}

	return b.String()
}

// Messages

type settlementLoadMsg struct {
	settlement *settlement.DailySettlement
	err        error
}

func (m SettlementModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.settlement.Get(ctx, m.settlement.Today())

		return settlementLoadMsg{settlement: st, err: err}
	}
}

type settlementSavedMsg struct {
	settlement *settlement.DailySettlement
	err        error
}

func (m SettlementModel) saveFloatCmd(value string) tea.Cmd {
	return func() tea.Msg {
		amount, err := parseAmount(value)
		if err != nil {
			return settlementSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.settlement.SetOpeningFloat(ctx, m.settlement.Today(), amount)

		return settlementSavedMsg{settlement: st, err: err}
	}
}

func (m SettlementModel) settleCmd(counts map[int64]int64) tea.Cmd {
	return func() tea.Msg {
		actual, err := settlement.Tally(counts)
		if err != nil {
			return settlementSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.settlement.Settle(ctx, m.settlement.Today(), actual)

		return settlementSavedMsg{settlement: st, err: err}
	}
}
