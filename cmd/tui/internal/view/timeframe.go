package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Timeframe is a predefined or custom range of business days.
type Timeframe int

const (
	TimeframeToday     Timeframe = 0
	TimeframeYesterday Timeframe = 1
	TimeframeThisWeek  Timeframe = 2
	TimeframeThisMonth Timeframe = 3
	TimeframeLastMonth Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeToday:
		return "Today"
	case TimeframeYesterday:
		return "Yesterday"
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// timeframeRange returns the half-open range [start, end) of whole days in loc.
func timeframeRange(tf Timeframe, now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch tf {
	case TimeframeYesterday:
		return today.AddDate(0, 0, -1), today
	case TimeframeThisWeek:
		offset := int(today.Weekday())
		if offset == 0 {
			offset = 7
		}

		return today.AddDate(0, 0, -offset+1), today.AddDate(0, 0, 1)
	case TimeframeThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return start, today.AddDate(0, 0, 1)
	case TimeframeLastMonth:
		end := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return end.AddDate(0, -1, 0), end
	}

	return today, today.AddDate(0, 0, 1)
}

// TimeframeSelectedMsg is emitted when the user has selected a valid range.
type TimeframeSelectedMsg struct {
	Label string
	Start time.Time
	End   time.Time // exclusive
}

type rangeForm struct {
	from string
	to   string
}

// TimeframePicker chooses a range of business days in loc, either preset or typed in.
type TimeframePicker struct {
	cursor Timeframe
	loc    *time.Location
	now    func() time.Time

	custom *huh.Form
	values *rangeForm
}

func NewTimeframePicker(loc *time.Location) TimeframePicker {
	return TimeframePicker{loc: loc, now: time.Now}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

// IsSelecting reports whether the preset list, not the custom range form, has focus.
func (m TimeframePicker) IsSelecting() bool {
	return m.custom == nil
}

// Reset returns the picker to the preset list.
func (m *TimeframePicker) Reset() {
	m.cursor = TimeframeToday
	m.custom = nil
	m.values = nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if m.custom != nil {
		return m.updateCustom(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > TimeframeToday {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < TimeframeCustom {
			m.cursor++
		}
	case "enter":
		if m.cursor == TimeframeCustom {
			return m.openCustom()
		}

		start, end := timeframeRange(m.cursor, m.now(), m.loc)

		return m, selected(m.cursor.String(), start, end)
	}

	return m, nil
}

func (m TimeframePicker) openCustom() (TimeframePicker, tea.Cmd) {
	today := FormatDate(m.now().In(m.loc))
	m.values = &rangeForm{from: today, to: today}

	m.custom = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("from").
				Title("From (YYYY-MM-DD)").
				Value(&m.values.from).
				Validate(m.validateDay),
			huh.NewInput().
				Key("to").
				Title("To (YYYY-MM-DD)").
				Value(&m.values.to).
				Validate(m.validateDay),
		),
	).WithWidth(30).WithShowHelp(false)

	return m, m.custom.Init()
}

func (m TimeframePicker) updateCustom(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.custom = nil
		return m, nil
	}

	form, cmd := m.custom.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.custom = f
	}

	if m.custom.State != huh.StateCompleted {
		return m, cmd
	}

	start, _ := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.values.from), m.loc)
	end, _ := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.values.to), m.loc)

	if end.Before(start) {
		start, end = end, start
	}

	label := fmt.Sprintf("%s to %s", FormatDate(start), FormatDate(end))
	m.custom = nil

	return m, selected(label, start, end.AddDate(0, 0, 1))
}

func (m TimeframePicker) validateDay(s string) error {
	if _, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), m.loc); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func selected(label string, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Label: label, Start: start, End: end}
	}
}

func (m TimeframePicker) View() string {
	if m.custom != nil {
		return "Custom range\n\n" + m.custom.View() + "\n" + faintStyle.Render("Esc: back to presets")
	}

	var b strings.Builder

	b.WriteString("Show sales for\n\n")

	for tf := TimeframeToday; tf <= TimeframeCustom; tf++ {
		if tf == m.cursor {
			b.WriteString(activeStyle("> "+tf.String()) + "\n")
			continue
		}

		b.WriteString("  " + tf.String() + "\n")
	}

	b.WriteString("\n" + faintStyle.Render("Enter: select | Esc: back"))

	return b.String()
}
