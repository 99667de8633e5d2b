package view

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/billing"
	"github.com/mfreitas/contas/internal/card"
	"github.com/mfreitas/contas/internal/export"
	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

// StatementModel shows one billing month: real purchases attributed to
// it plus projected installments, with per-category totals underneath.
type StatementModel struct {
	CommonModel
	stmtService   *statement.Service
	cardService   *card.Service
	exportService *export.Service

	houseID uuid.UUID
	month   time.Time

	// Card cycling; index 0 means all cards.
	cards   []*card.Card
	cardIdx int

	table   table.Model
	entries []statement.Entry
	summary statement.Summary

	loading bool
	err     error
	status  string
}

func NewStatementModel(stmtSvc *statement.Service, cardSvc *card.Service, exportSvc *export.Service, houseID uuid.UUID) StatementModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 36},
		{Title: "Category", Width: 16},
		{Title: "Inst.", Width: 6},
		{Title: "Amount", Width: 10},
		{Title: "Note", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return StatementModel{
		stmtService:   stmtSvc,
		cardService:   cardSvc,
		exportService: exportSvc,
		houseID:       houseID,
		month:         billing.MonthOf(time.Now()),
		table:         t,
	}
}

func (m StatementModel) Title() string { return "Statement" }
func (m StatementModel) ShortHelp() string {
	return "Esc: back | ←/→: month | c: card | x: export | r: refresh"
}

func (m StatementModel) Init() tea.Cmd {
	return tea.Batch(m.loadCardsCmd(), m.loadEntriesCmd())
}

func (m StatementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stmtCardsMsg:
		if msg.err == nil {
			m.cards = msg.cards
		}

		return m, nil

	case stmtEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.entries = msg.entries
		m.summary = statement.Summarize(msg.entries)
		m.refreshTable()

		return m, nil

	case stmtExportMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Exported to %s", msg.path)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 14)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.month = billing.AddMonths(m.month, -1)
			m.loading = true

			return m, m.loadEntriesCmd()
		case "right", "l":
			m.month = billing.AddMonths(m.month, 1)
			m.loading = true

			return m, m.loadEntriesCmd()
		case "c":
			m.cardIdx = (m.cardIdx + 1) % (len(m.cards) + 1)
			m.loading = true

			return m, m.loadEntriesCmd()
		case "x":
			return m, m.exportCmd()
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StatementModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading statement...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	cardLabel := "All Cards"
	if m.cardIdx > 0 && m.cardIdx <= len(m.cards) {
		cardLabel = m.cards[m.cardIdx-1].Name
	}

	header := fmt.Sprintf(
		"Statement for %s | [c] Card: %s",
		activeStyle(FormatMonth(m.month)),
		activeStyle(cardLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		m.summaryView(),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m StatementModel) summaryView() string {
	if m.summary.Count == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No entries this month")
	}

	categories := make([]string, 0, len(m.summary.ByCategory))
	for c := range m.summary.ByCategory {
		categories = append(categories, c)
	}

	sort.Strings(categories)

	var sb strings.Builder

	for _, c := range categories {
		ct := m.summary.ByCategory[c]
		sb.WriteString(fmt.Sprintf("%s: %s (%d)  ", c, FormatAmount(ct.Total), ct.Count))
	}

	total := fmt.Sprintf("Total: %s (%d entries)", FormatAmount(m.summary.Total), m.summary.Count)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(sb.String()),
		lipgloss.NewStyle().Bold(true).Render(total),
	)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *StatementModel) refreshTable() {
	faint := lipgloss.NewStyle().Faint(true)

	rows := make([]table.Row, 0, len(m.entries))

	for _, e := range m.entries {
		note := ""

		switch {
		case e.Projection:
			note = faint.Render("projected")
		case e.Deferred:
			note = e.DeferredNote
		}

		description := e.Description
		if e.Projection {
			description = faint.Render(description)
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			description,
			e.Category,
			e.Installment,
			FormatAmount(e.Amount),
			note,
		})
	}

	m.table.SetRows(rows)
}

func (m StatementModel) filter() purchase.ListFilter {
	filter := purchase.ListFilter{HouseID: m.houseID}

	if m.cardIdx > 0 && m.cardIdx <= len(m.cards) {
		filter.CardID = &m.cards[m.cardIdx-1].ID
	}

	return filter
}

// Messages

type stmtCardsMsg struct {
	cards []*card.Card
	err   error
}

func (m StatementModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.cardService.ListByHouse(ctx, m.houseID)

		return stmtCardsMsg{cards: cards, err: err}
	}
}

type stmtEntriesMsg struct {
	entries []statement.Entry
	err     error
}

func (m StatementModel) loadEntriesCmd() tea.Cmd {
	filter := m.filter()
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.stmtService.MonthEntries(ctx, filter, month)

		return stmtEntriesMsg{entries: entries, err: err}
	}
}

type stmtExportMsg struct {
	path string
	err  error
}

func (m StatementModel) exportCmd() tea.Cmd {
	filter := m.filter()
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		path := export.Filename(month)

		f, err := os.Create(path)
		if err != nil {
			return stmtExportMsg{err: err}
		}
		defer f.Close()

		if err := m.exportService.ExportMonth(ctx, f, filter, month); err != nil {
			return stmtExportMsg{err: err}
		}

		return stmtExportMsg{path: path}
	}
}
