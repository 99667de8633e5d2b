package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mfreitas/contas/cmd/tui/internal/view"
	"github.com/mfreitas/contas/internal/card"
	cardStore "github.com/mfreitas/contas/internal/card/store"
	"github.com/mfreitas/contas/internal/config"
	"github.com/mfreitas/contas/internal/database"
	"github.com/mfreitas/contas/internal/export"
	"github.com/mfreitas/contas/internal/purchase"
	purchaseStore "github.com/mfreitas/contas/internal/purchase/store"
	"github.com/mfreitas/contas/internal/statement"
)

type model struct {
	purchaseService  *purchase.Service
	cardService      *card.Service
	statementService *statement.Service
	exportService    *export.Service

	houseID uuid.UUID
	userID  uuid.UUID

	currentView View

	statementView view.StatementModel
	addView       view.AddModel
	cardsView     view.CardsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewStatement View = 1
	ViewAdd       View = 2
	ViewCards     View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	houseID, err := uuid.Parse(cfg.TUI.HouseID)
	if err != nil {
		slog.Error("TUI_HOUSE_ID must be set to a valid uuid")
		os.Exit(1)
	}

	userID, err := uuid.Parse(cfg.TUI.UserID)
	if err != nil {
		slog.Error("TUI_USER_ID must be set to a valid uuid")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	cardSvc := card.NewService(cardStore.New(db))
	purchaseSvc := purchase.NewService(purchaseStore.New(db), cardSvc)
	stmtSvc := statement.NewService(purchaseSvc, cardSvc)
	exportSvc := export.NewService(stmtSvc)

	return model{
		purchaseService:  purchaseSvc,
		cardService:      cardSvc,
		statementService: stmtSvc,
		exportService:    exportSvc,
		houseID:          houseID,
		userID:           userID,
		currentView:      ViewMenu,
		statementView:    view.NewStatementModel(stmtSvc, cardSvc, exportSvc, houseID),
		addView:          view.NewAddModel(purchaseSvc, cardSvc, houseID, userID),
		cardsView:        view.NewCardsModel(cardSvc, houseID),
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
				m.currentView = ViewStatement
				m.statementView = view.NewStatementModel(m.statementService, m.cardService, m.exportService, m.houseID)

				return m, m.statementView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.purchaseService, m.cardService, m.houseID, m.userID)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewCards
				m.cardsView = view.NewCardsModel(m.cardService, m.houseID)

				return m, m.cardsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewStatement:
		var newModel tea.Model
		newModel, cmd = m.statementView.Update(msg)
		m.statementView = newModel.(view.StatementModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewCards:
		var newModel tea.Model
		newModel, cmd = m.cardsView.Update(msg)
		m.cardsView = newModel.(view.CardsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Contas TUI\n\n" +
				"1. Monthly Statement\n" +
				"2. Add Purchase\n" +
				"3. Manage Cards\n\n" +
				"q. Quit",
		)
	case ViewStatement:
		return m.statementView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewCards:
		return m.cardsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
