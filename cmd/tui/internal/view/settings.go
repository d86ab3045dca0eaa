package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/settings"
)

var settingTitles = map[settings.Key]string{
	settings.KeyTaxRate:           "Tax rate (%)",
	settings.KeyLowStockThreshold: "Low stock threshold",
}

// SettingsModel edits the tax rate and low stock threshold.
type SettingsModel struct {
	CommonModel
	settings *settings.Service

	form   *huh.Form
	keys   []settings.Key
	values []*string

	loading bool
	err     error
	status  string
}

func NewSettingsModel(svc *settings.Service) SettingsModel {
	return SettingsModel{settings: svc, loading: true}
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string { return "Enter: save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		return m.buildForm(msg.settings)

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = okStyle.Render("Settings saved")
		}

		return m, m.loadCmd()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
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

	return m, m.saveCmd()
}

func (m SettingsModel) buildForm(all []settings.Setting) (tea.Model, tea.Cmd) {
	m.keys = make([]settings.Key, len(all))
	m.values = make([]*string, len(all))
	fields := make([]huh.Field, len(all))

	for i, st := range all {
		value := st.Value
		m.keys[i] = st.Key
		m.values[i] = &value

		title, ok := settingTitles[st.Key]
		if !ok {
			title = string(st.Key)
		}

		fields[i] = huh.NewInput().
			Key(string(st.Key)).
			Title(title).
			Value(m.values[i])
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(40).WithShowHelp(false)

	return m, m.form.Init()
}

func (m SettingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	var b strings.Builder

	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}

	if m.form != nil {
		b.WriteString(m.form.View())
	}

	b.WriteString("\n" + faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type settingsLoadMsg struct {
	settings []settings.Setting
	err      error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		all, err := m.settings.All(ctx)

		return settingsLoadMsg{settings: all, err: err}
	}
}

type settingsSavedMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	keys := m.keys
	values := make([]string, len(m.values))

	for i, v := range m.values {
		values[i] = *v
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		for i, key := range keys {
			if _, err := m.settings.Set(ctx, key, values[i]); err != nil {
				return settingsSavedMsg{err: err}
			}
		}

		return settingsSavedMsg{}
	}
}
