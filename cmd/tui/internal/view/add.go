package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfreitas/contas/internal/billing"
	"github.com/mfreitas/contas/internal/card"
	"github.com/mfreitas/contas/internal/purchase"
)

// AddModel records a purchase through a form. The billing month is
// assigned on save from the chosen card's closing day.
type AddModel struct {
	CommonModel
	purchaseService *purchase.Service
	cardService     *card.Service

	houseID uuid.UUID
	userID  uuid.UUID

	cards []*card.Card
	form  *huh.Form

	saving bool
	status string
	err    error

	// Form bindings
	formDesc        string
	formAmount      string
	formCategory    string
	formDate        string
	formInstallment string
	formCardID      string
}

func NewAddModel(purchaseSvc *purchase.Service, cardSvc *card.Service, houseID, userID uuid.UUID) AddModel {
	return AddModel{
		purchaseService: purchaseSvc,
		cardService:     cardSvc,
		houseID:         houseID,
		userID:          userID,
	}
}

func (m AddModel) Title() string     { return "Add Purchase" }
func (m AddModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.loadCardsCmd()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addCardsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.cards = msg.cards
		m.form = m.newForm()

		return m, m.form.Init()

	case addSaveMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Saved; billed on the %s statement", FormatMonth(msg.billingMonth))
		}

		m.form = m.newForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil || m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd()
}

func (m AddModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.form == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	}

	content := m.form.View()

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m *AddModel) newForm() *huh.Form {
	m.formDesc = ""
	m.formAmount = ""
	m.formCategory = ""
	m.formDate = time.Now().Format(time.DateOnly)
	m.formInstallment = ""
	m.formCardID = ""

	cardOptions := []huh.Option[string]{huh.NewOption("No card (cash/debit)", "")}
	for _, c := range m.cards {
		cardOptions = append(cardOptions, huh.NewOption(c.Name, c.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("123.45").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := parseAmount(s)
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if cents <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(time.DateOnly).
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("installment").
				Title("Installment").
				Placeholder("1/6 (empty for one-off)").
				Value(&m.formInstallment).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, _, ok := billing.ParseInstallment(s); !ok {
						return fmt.Errorf("installment must look like 2/6")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("card").
				Title("Card").
				Options(cardOptions...).
				Value(&m.formCardID),
		),
	).WithWidth(50).WithShowHelp(false)
}

func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Messages

type addCardsMsg struct {
	cards []*card.Card
	err   error
}

func (m AddModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.cardService.ListByHouse(ctx, m.houseID)

		return addCardsMsg{cards: cards, err: err}
	}
}

type addSaveMsg struct {
	billingMonth time.Time
	err          error
}

func (m AddModel) saveCmd() tea.Cmd {
	params := purchase.CreateParams{
		HouseID:     m.houseID,
		Description: strings.TrimSpace(m.formDesc),
		Category:    strings.TrimSpace(m.formCategory),
		Installment: strings.TrimSpace(m.formInstallment),
		CreatedBy:   m.userID,
	}

	params.Amount, _ = parseAmount(m.formAmount)
	params.Date, _ = time.Parse(time.DateOnly, m.formDate)

	if m.formCardID != "" {
		if id, err := uuid.Parse(m.formCardID); err == nil {
			params.CardID = &id
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.purchaseService.Create(ctx, params)
		if err != nil {
			return addSaveMsg{err: err}
		}

		var month time.Time
		if p.BillingMonth != nil {
			month = *p.BillingMonth
		}

		return addSaveMsg{billingMonth: month}
	}
}
