package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/card"
)

type cardsState int

const (
	cardsStateBrowse cardsState = iota
	cardsStateAdd
)

// CardsModel lists the house's cards and their closing days.
type CardsModel struct {
	CommonModel
	cardService *card.Service

	houseID uuid.UUID

	state  cardsState
	table  table.Model
	cards  []*card.Card
	form   *huh.Form
	status string
	err    error

	// Form bindings
	formName       string
	formLastFour   string
	formClosingDay string
}

func NewCardsModel(cardSvc *card.Service, houseID uuid.UUID) CardsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Last Four", Width: 10},
		{Title: "Closing Day", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return CardsModel{
		cardService: cardSvc,
		houseID:     houseID,
		table:       t,
	}
}

func (m CardsModel) Title() string { return "Cards" }
func (m CardsModel) ShortHelp() string {
	if m.state == cardsStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add card | r: refresh"
}

func (m CardsModel) Init() tea.Cmd {
	return m.loadCardsCmd()
}

func (m CardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.cards = msg.cards
		m.refreshTable()

		return m, nil

	case cardsSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Card added"
		}

		m.state = cardsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCardsCmd()
	}

	switch m.state {
	case cardsStateBrowse:
		return m.updateBrowse(msg)
	case cardsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m CardsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCardsCmd()
		case "a":
			m.form = m.newForm()
			m.state = cardsStateAdd
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CardsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = cardsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
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

func (m CardsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == cardsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Card\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CardsModel) newForm() *huh.Form {
	m.formName = ""
	m.formLastFour = ""
	m.formClosingDay = "20"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("last_four").
				Title("Last Four").
				Value(&m.formLastFour),

			huh.NewInput().
				Key("closing_day").
				Title("Closing Day").
				Value(&m.formClosingDay).
				Validate(func(s string) error {
					day, err := strconv.Atoi(s)
					if err != nil || day < 1 || day > 28 {
						return fmt.Errorf("closing day must be between 1 and 28")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *CardsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cards))
	for _, c := range m.cards {
		rows = append(rows, table.Row{
			c.Name,
			c.LastFour,
			strconv.Itoa(c.ClosingDay),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type cardsLoadMsg struct {
	cards []*card.Card
	err   error
}

func (m CardsModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.cardService.ListByHouse(ctx, m.houseID)

		return cardsLoadMsg{cards: cards, err: err}
	}
}

type cardsSaveMsg struct {
	err error
}

func (m CardsModel) saveCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	lastFour := strings.TrimSpace(m.formLastFour)
	closingDay, _ := strconv.Atoi(m.formClosingDay)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.cardService.Create(ctx, card.CreateParams{
			HouseID:    m.houseID,
			Name:       name,
			LastFour:   lastFour,
			ClosingDay: closingDay,
		})

		return cardsSaveMsg{err: err}
	}
}
