package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/report"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type reportState int

const (
	reportStateForm reportState = iota
	reportStateExporting
	reportStateResult
)

type reportForm struct {
	date string
	path string
}

// ReportModel writes the daily workbook to disk.
type ReportModel struct {
	CommonModel
	reportService *report.Service
	days          *settlement.Service

	state   reportState
	form    *huh.Form
	values  *reportForm
	spinner spinner.Model

	path string
	err  error
}

func NewReportModel(svc *report.Service, days *settlement.Service) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		reportService: svc,
		days:          days,
		spinner:       s,
	}
}

func (m ReportModel) Title() string { return "Daily Report" }

func (m ReportModel) ShortHelp() string {
	switch m.state {
	case reportStateResult:
		return "Esc: back to menu"
	case reportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Start resets the model to a fresh form.
func (m ReportModel) Start() (ReportModel, tea.Cmd) {
	m.values = &reportForm{date: FormatDate(m.days.Today()), path: "./reports"}
	m.form = m.buildForm()
	m.state = reportStateForm
	m.err = nil

	return m, m.form.Init()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case reportStateForm:
		return m.updateForm(msg)
	case reportStateExporting:
		return m.updateExporting(msg)
	case reportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = reportStateExporting

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.values))
}

func (m ReportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(reportResultMsg); ok {
		m.state = reportStateResult
		m.err = result.err
		m.path = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ReportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Business day").
				Description("YYYY-MM-DD or today").
				Value(&m.values.date).
				Validate(func(s string) error {
					_, err := m.days.ParseDay(s)
					return err
				}),

			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./reports").
				Value(&m.values.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case reportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building the daily workbook...", m.spinner.View()),
		)

	case reportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				okStyle.Bold(true).Render("Report written"),
				"",
				m.path,
			),
		)
	}

	return ""
}

type reportResultMsg struct {
	path string
	err  error
}

const exportTimeout = 2 * time.Minute

func (m ReportModel) exportCmd(values reportForm) tea.Cmd {
	return func() tea.Msg {
		day, err := m.days.ParseDay(values.date)
		if err != nil {
			return reportResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := m.reportService.Export(ctx, day, values.path)

		return reportResultMsg{path: path, err: err}
	}
}
