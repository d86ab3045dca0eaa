package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	checkoutStore "github.com/MrJamesThe3rd/till/internal/checkout/store"
	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/importer"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/till/internal/inventory/store"
	"github.com/MrJamesThe3rd/till/internal/report"
	"github.com/MrJamesThe3rd/till/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/till/internal/settings/store"
	"github.com/MrJamesThe3rd/till/internal/settlement"
	settlementStore "github.com/MrJamesThe3rd/till/internal/settlement/store"
)

type model struct {
	inventoryService  *inventory.Service
	checkoutService   *checkout.Service
	settingsService   *settings.Service
	settlementService *settlement.Service
	importService     *importer.Service
	reportService     *report.Service

	actor string
	loc   *time.Location

	currentView View

	registerView   view.RegisterModel
	stockView      view.StockModel
	salesView      view.SalesModel
	settlementView view.SettlementModel
	importView     view.ImportModel
	reportView     view.ReportModel
	settingsView   view.SettingsModel
}

type View int

const (
	ViewMenu       View = 0
	ViewRegister   View = 1
	ViewStock      View = 2
	ViewSales      View = 3
	ViewSettlement View = 4
	ViewImport     View = 5
	ViewReport     View = 6
	ViewSettings   View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	invSvc := inventory.NewService(inventoryStore.New(db), inventory.WithLocation(loc))
	setSvc := settings.NewService(settingsStore.New(db))
	coSvc := checkout.NewService(checkoutStore.New(db), setSvc)
	stlSvc := settlement.NewService(settlementStore.New(db), settlement.WithLocation(loc))
	impSvc := importer.NewService(invSvc)
	repSvc := report.NewService(coSvc, invSvc, stlSvc)

	return model{
		inventoryService:  invSvc,
		checkoutService:   coSvc,
		settingsService:   setSvc,
		settlementService: stlSvc,
		importService:     impSvc,
		reportService:     repSvc,
		actor:             cfg.App.Actor,
		loc:               loc,
		currentView:       ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.inventoryService, m.checkoutService, m.settingsService, m.actor)

				return m, m.registerView.Init()
			case "2":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.inventoryService, m.actor)

				return m, m.stockView.Init()
			case "3":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.checkoutService, m.loc)

				return m, m.salesView.Init()
			case "4":
				m.currentView = ViewSettlement
				m.settlementView = view.NewSettlementModel(m.settlementService)

				return m, m.settlementView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.actor)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewReport
				m.reportView, cmd = view.NewReportModel(m.reportService, m.settlementService).Start()

				return m, cmd
			case "7":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewSettlement:
		var newModel tea.Model
		newModel, cmd = m.settlementView.Update(msg)
		m.settlementView = newModel.(view.SettlementModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) active() view.View {
	switch m.currentView {
	case ViewRegister:
		return m.registerView
	case ViewStock:
		return m.stockView
	case ViewSales:
		return m.salesView
	case ViewSettlement:
		return m.settlementView
	case ViewImport:
		return m.importView
	case ViewReport:
		return m.reportView
	case ViewSettings:
		return m.settingsView
	}

	return nil
}

var titleStyle = lipgloss.NewStyle().Bold(true).PaddingLeft(1).Foreground(lipgloss.Color("205"))

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Till\n\n" +
				"1. Register\n" +
				"2. Stock\n" +
				"3. Sales History\n" +
				"4. Daily Settlement\n" +
				"5. Import Items\n" +
				"6. Daily Report\n" +
				"7. Settings\n\n" +
				"q. Quit",
		)
	}

	v := m.active()
	if v == nil {
		return "Unknown View"
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(v.Title()), v.View())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
