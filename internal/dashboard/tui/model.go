// Package tui is the terminal front end of the dashboard. It holds no
// business state: every keystroke is forwarded to the controller and the
// screen is redrawn from the snapshots the controller sends back.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/usecase"
)

// Controller is the part of the dashboard controller the UI drives.
type Controller interface {
	ReloadAccounts()
	SelectAccount(accountNo string)
	RefreshBalance()
	SetCustomer(customerID string)
	RefreshHistory()
	ObserveMerchantQuery(text string)
	PickMerchant(m entity.MerchantSuggestion)
	UpdateField(form entity.Form, field entity.Field, value string)
	GenerateTxID(form entity.Form)
	ResetForm(form entity.Form)
	SubmitTransfer()
	SubmitPayment()
}

type slotKind int

const (
	slotAccount slotKind = iota
	slotCustomer
	slotDraft
	slotMerchantQuery
)

type slot struct {
	kind  slotKind
	form  entity.Form
	field entity.Field
	label string
	input textinput.Model
}

// Model is the root bubbletea model.
type Model struct {
	ctrl  Controller
	slots []slot
	focus int

	selected string
	pick     int

	state    usecase.State
	status   string
	statusOK bool

	spinner spinner.Model
	width   int
}

func New(ctrl Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := Model{
		ctrl:    ctrl,
		slots:   newSlots(),
		spinner: s,
	}
	m.setFocus(0)

	return m
}

func newSlots() []slot {
	input := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		ti.Width = width
		ti.Prompt = ""
		return ti
	}

	draft := func(form entity.Form, field entity.Field, label, placeholder string, width int) slot {
		return slot{kind: slotDraft, form: form, field: field, label: label, input: input(placeholder, width)}
	}

	return []slot{
		{kind: slotAccount, label: "Account"},
		{kind: slotCustomer, label: "Customer", input: input("CustomerId", 12)},

		draft(entity.FormTransfer, entity.FieldFrom, "From", "From accountNo", 20),
		draft(entity.FormTransfer, entity.FieldTo, "To", "To accountNo", 20),
		draft(entity.FormTransfer, entity.FieldAmount, "Amount", "Amount", 12),
		draft(entity.FormTransfer, entity.FieldCurrency, "CCY", "CCY", 4),
		draft(entity.FormTransfer, entity.FieldTxID, "TxId", "TxId", 38),
		draft(entity.FormTransfer, entity.FieldChannel, "Channel", "Channel (optional)", 12),

		draft(entity.FormPayment, entity.FieldFrom, "From", "From accountNo", 20),
		{kind: slotMerchantQuery, form: entity.FormPayment, label: "Search", input: input("Search merchant name…", 24)},
		draft(entity.FormPayment, entity.FieldMerchantID, "Merchant", "MerchantId", 20),
		draft(entity.FormPayment, entity.FieldAmount, "Amount", "Amount", 12),
		draft(entity.FormPayment, entity.FieldCurrency, "CCY", "CCY", 4),
		draft(entity.FormPayment, entity.FieldTxID, "TxId", "TxId", 38),
		draft(entity.FormPayment, entity.FieldChannel, "Channel", "Channel (optional)", 12),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.applyState(msg.State)
		return m, nil
	case OutcomeMsg:
		m.status = msg.Outcome.Message()
		m.statusOK = msg.Outcome.OK()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyCtrlT:
		m.ctrl.SubmitTransfer()
		return m, nil
	case tea.KeyCtrlP:
		m.ctrl.SubmitPayment()
		return m, nil
	case tea.KeyCtrlG:
		m.ctrl.GenerateTxID(m.focusedForm())
		return m, nil
	case tea.KeyCtrlX:
		m.ctrl.ResetForm(m.focusedForm())
		return m, nil
	case tea.KeyCtrlR:
		m.ctrl.RefreshHistory()
		return m, nil
	case tea.KeyCtrlB:
		m.ctrl.RefreshBalance()
		return m, nil
	case tea.KeyCtrlA:
		m.ctrl.ReloadAccounts()
		return m, nil
	}

	cur := m.slots[m.focus]
	switch cur.kind {
	case slotAccount:
		switch msg.Type {
		case tea.KeyLeft:
			m.cycleAccount(-1)
		case tea.KeyRight:
			m.cycleAccount(1)
		}
		return m, nil
	case slotMerchantQuery:
		if n := len(m.state.Suggestions); n > 0 {
			switch msg.Type {
			case tea.KeyUp:
				m.pick = (m.pick - 1 + n) % n
				return m, nil
			case tea.KeyDown:
				m.pick = (m.pick + 1) % n
				return m, nil
			case tea.KeyEnter:
				m.ctrl.PickMerchant(m.state.Suggestions[m.pick])
				m.pick = 0
				m.setFocus(m.slotIndex(entity.FormPayment, entity.FieldAmount))
				return m, nil
			}
		}
	}

	prev := cur.input.Value()
	var cmd tea.Cmd
	m.slots[m.focus].input, cmd = cur.input.Update(msg)
	if v := m.slots[m.focus].input.Value(); v != prev {
		m.dispatch(m.focus, v)
	}

	return m, cmd
}

func (m *Model) dispatch(i int, v string) {
	s := m.slots[i]
	switch s.kind {
	case slotCustomer:
		m.ctrl.SetCustomer(v)
	case slotMerchantQuery:
		m.ctrl.ObserveMerchantQuery(v)
	case slotDraft:
		if s.field == entity.FieldCurrency {
			m.slots[i].input.SetValue(strings.ToUpper(v))
		}
		m.ctrl.UpdateField(s.form, s.field, v)
	}
}

// applyState copies s into the inputs. The focused input is only overwritten
// when the user has not typed past the previous snapshot.
func (m *Model) applyState(s usecase.State) {
	prev := m.state
	m.state = s
	m.selected = s.Selected

	for i := range m.slots {
		next, ok := slotValue(m.slots[i], s)
		if !ok {
			continue
		}
		old, _ := slotValue(m.slots[i], prev)
		if i != m.focus || m.slots[i].input.Value() == old {
			m.slots[i].input.SetValue(next)
		}
	}

	if m.pick >= len(s.Suggestions) {
		m.pick = 0
	}
}

func (m *Model) setFocus(i int) {
	n := len(m.slots)
	i = ((i % n) + n) % n

	m.slots[m.focus].input.Blur()
	m.focus = i
	if m.slots[i].kind != slotAccount {
		m.slots[i].input.Focus()
	}
}

func (m *Model) cycleAccount(step int) {
	options := make([]string, 0, len(m.state.Accounts)+1)
	options = append(options, "")
	for _, a := range m.state.Accounts {
		options = append(options, a.AccountNo)
	}

	idx := 0
	for i, o := range options {
		if o == m.selected {
			idx = i
			break
		}
	}

	idx = (idx + step + len(options)) % len(options)
	m.selected = options[idx]
	m.ctrl.SelectAccount(m.selected)
}

func (m Model) focusedForm() entity.Form {
	if f := m.slots[m.focus].form; f != "" {
		return f
	}
	return entity.FormTransfer
}

func (m Model) slotIndex(form entity.Form, field entity.Field) int {
	for i, s := range m.slots {
		if s.kind == slotDraft && s.form == form && s.field == field {
			return i
		}
	}
	return m.focus
}

func slotValue(s slot, st usecase.State) (string, bool) {
	switch s.kind {
	case slotCustomer:
		return st.CustomerID, true
	case slotMerchantQuery:
		return st.MerchantQuery, true
	case slotDraft:
		return draftValue(st, s.form, s.field), true
	default:
		return "", false
	}
}

func draftValue(st usecase.State, form entity.Form, field entity.Field) string {
	if form == entity.FormPayment {
		p := st.Payment
		switch field {
		case entity.FieldFrom:
			return p.From
		case entity.FieldMerchantID:
			return p.MerchantID
		case entity.FieldAmount:
			return p.Amount
		case entity.FieldCurrency:
			return p.Currency
		case entity.FieldTxID:
			return p.TxID
		case entity.FieldChannel:
			return p.Channel
		}
		return ""
	}

	t := st.Transfer
	switch field {
	case entity.FieldFrom:
		return t.From
	case entity.FieldTo:
		return t.To
	case entity.FieldAmount:
		return t.Amount
	case entity.FieldCurrency:
		return t.Currency
	case entity.FieldTxID:
		return t.TxID
	case entity.FieldChannel:
		return t.Channel
	}
	return ""
}
