package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/usecase"
)

type fakeController struct {
	selected  []string
	customers []string
	queries   []string
	picked    []entity.MerchantSuggestion
	fields    []string
	generated []entity.Form
	reset     []entity.Form
	calls     []string
}

func (f *fakeController) ReloadAccounts()                { f.calls = append(f.calls, "accounts") }
func (f *fakeController) SelectAccount(accountNo string) { f.selected = append(f.selected, accountNo) }
func (f *fakeController) RefreshBalance()                { f.calls = append(f.calls, "balance") }
func (f *fakeController) SetCustomer(id string)          { f.customers = append(f.customers, id) }
func (f *fakeController) RefreshHistory()                { f.calls = append(f.calls, "history") }
func (f *fakeController) ObserveMerchantQuery(text string) {
	f.queries = append(f.queries, text)
}
func (f *fakeController) PickMerchant(m entity.MerchantSuggestion) { f.picked = append(f.picked, m) }
func (f *fakeController) UpdateField(form entity.Form, field entity.Field, value string) {
	f.fields = append(f.fields, string(form)+"."+string(field)+"="+value)
}
func (f *fakeController) GenerateTxID(form entity.Form) { f.generated = append(f.generated, form) }
func (f *fakeController) ResetForm(form entity.Form)    { f.reset = append(f.reset, form) }
func (f *fakeController) SubmitTransfer()               { f.calls = append(f.calls, "transfer") }
func (f *fakeController) SubmitPayment()                { f.calls = append(f.calls, "pay") }

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestModelTypingForwardsEveryEdit(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl)

	m, _ = send(m, key(tea.KeyTab))
	m = typeText(m, "C1")

	if !reflect.DeepEqual(ctrl.customers, []string{"C", "C1"}) {
		t.Fatalf("unexpected customer edits: %v", ctrl.customers)
	}

	m.setFocus(m.slotIndex(entity.FormTransfer, entity.FieldCurrency))
	m = typeText(m, "us")

	want := []string{"transfer.currency=u", "transfer.currency=Us"}
	if !reflect.DeepEqual(ctrl.fields, want) {
		t.Fatalf("unexpected field edits: %v", ctrl.fields)
	}
	if got := m.slots[m.focus].input.Value(); got != "US" {
		t.Fatalf("expected upper-cased currency input, got %q", got)
	}
}

func TestModelAccountCycle(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl)

	m, _ = send(m, StateMsg{State: usecase.State{
		Accounts: []entity.Account{{AccountNo: "A100"}, {AccountNo: "A200"}},
	}})

	m, _ = send(m, key(tea.KeyRight))
	m, _ = send(m, key(tea.KeyRight))
	m, _ = send(m, key(tea.KeyRight))
	_, _ = send(m, key(tea.KeyLeft))

	want := []string{"A100", "A200", "", "A200"}
	if !reflect.DeepEqual(ctrl.selected, want) {
		t.Fatalf("expected %v, got %v", want, ctrl.selected)
	}
}

func TestModelMerchantPick(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl)
	m.setFocus(m.indexOf(slotMerchantQuery))

	m = typeText(m, "co")
	if !reflect.DeepEqual(ctrl.queries, []string{"c", "co"}) {
		t.Fatalf("unexpected queries: %v", ctrl.queries)
	}

	suggestions := []entity.MerchantSuggestion{
		{MerchantID: "M-Coffee", Name: "Corner Coffee", MCC: "5814"},
		{MerchantID: "M-Cola", Name: "Cola Stand", MCC: "5499"},
	}
	m, _ = send(m, StateMsg{State: usecase.State{MerchantQuery: "co", Suggestions: suggestions}})

	m, _ = send(m, key(tea.KeyDown))
	m, _ = send(m, key(tea.KeyEnter))

	if len(ctrl.picked) != 1 || ctrl.picked[0].MerchantID != "M-Cola" {
		t.Fatalf("expected M-Cola picked, got %v", ctrl.picked)
	}
	if m.focus != m.slotIndex(entity.FormPayment, entity.FieldAmount) {
		t.Fatalf("expected focus on payment amount, got slot %d", m.focus)
	}

	m, _ = send(m, StateMsg{State: usecase.State{
		MerchantQuery: "Cola Stand",
		Payment:       entity.PaymentDraft{MerchantID: "M-Cola"},
	}})
	if got := m.slots[m.indexOf(slotMerchantQuery)].input.Value(); got != "Cola Stand" {
		t.Fatalf("expected query to show merchant name, got %q", got)
	}
	if got := m.slots[m.slotIndex(entity.FormPayment, entity.FieldMerchantID)].input.Value(); got != "M-Cola" {
		t.Fatalf("expected merchant id synced, got %q", got)
	}
}

func TestModelStateDoesNotClobberFocusedInput(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl)
	m.setFocus(m.slotIndex(entity.FormTransfer, entity.FieldAmount))

	m = typeText(m, "12")

	// the snapshot for the first keystroke arrives after the second one
	m, _ = send(m, StateMsg{State: usecase.State{Transfer: entity.TransferDraft{From: "A100", Amount: "1"}}})

	if got := m.slots[m.focus].input.Value(); got != "12" {
		t.Fatalf("focused input must keep %q, got %q", "12", got)
	}
	if got := m.slots[m.slotIndex(entity.FormTransfer, entity.FieldFrom)].input.Value(); got != "A100" {
		t.Fatalf("unfocused input must follow state, got %q", got)
	}

	m, _ = send(m, StateMsg{State: usecase.State{Transfer: entity.TransferDraft{From: "A100", Amount: "12"}}})
	m, _ = send(m, StateMsg{State: usecase.State{Transfer: entity.TransferDraft{From: "A100"}}})

	if got := m.slots[m.focus].input.Value(); got != "" {
		t.Fatalf("reset must clear the focused input, got %q", got)
	}
}

func TestModelKeyBindings(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl)

	m, _ = send(m, key(tea.KeyCtrlT))
	m, _ = send(m, key(tea.KeyCtrlP))
	m, _ = send(m, key(tea.KeyCtrlR))
	m, _ = send(m, key(tea.KeyCtrlB))
	m, _ = send(m, key(tea.KeyCtrlA))

	if !reflect.DeepEqual(ctrl.calls, []string{"transfer", "pay", "history", "balance", "accounts"}) {
		t.Fatalf("unexpected calls: %v", ctrl.calls)
	}

	m, _ = send(m, key(tea.KeyCtrlG))
	m.setFocus(m.slotIndex(entity.FormPayment, entity.FieldTxID))
	m, _ = send(m, key(tea.KeyCtrlG))
	m, _ = send(m, key(tea.KeyCtrlX))

	if !reflect.DeepEqual(ctrl.generated, []entity.Form{entity.FormTransfer, entity.FormPayment}) {
		t.Fatalf("unexpected generate calls: %v", ctrl.generated)
	}
	if !reflect.DeepEqual(ctrl.reset, []entity.Form{entity.FormPayment}) {
		t.Fatalf("unexpected reset calls: %v", ctrl.reset)
	}

	_, cmd := send(m, key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewBalanceAndHistory(t *testing.T) {
	m := New(&fakeController{})

	m, _ = send(m, StateMsg{State: usecase.State{
		Accounts: []entity.Account{{AccountNo: "A100", Type: "checking", Currency: "USD"}},
		Selected: "A100",
		Balance:  reactive.Snapshot[string, decimal.Decimal]{Key: "A100", Value: reactive.Unknown[decimal.Decimal](), Loading: true},
	}})

	view := m.View()
	if !strings.Contains(view, noBalance) {
		t.Fatalf("expected unknown balance marker in view:\n%s", view)
	}
	if !strings.Contains(view, "A100 (checking, USD)") {
		t.Fatalf("expected selected account in view:\n%s", view)
	}

	m, _ = send(m, StateMsg{State: usecase.State{
		Selected: "A100",
		Balance:  reactive.Snapshot[string, decimal.Decimal]{Key: "A100", Value: reactive.Known(decimal.RequireFromString("12.5"))},
		History: reactive.Snapshot[string, []entity.TransactionRecord]{
			Key: "C1",
			Value: reactive.Known([]entity.TransactionRecord{{
				Kind:      entity.TxKindTransfer,
				TxID:      "T-42",
				FromAcct:  "A100",
				Target:    "A200",
				Amount:    decimal.RequireFromString("25"),
				Currency:  "USD",
				Channel:   "ui",
				CreatedAt: "2026-01-02T03:04:05Z",
			}}),
		},
	}})

	view = m.View()
	for _, want := range []string{"12.50", "T-42", "25.00", "A200"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewOutcomeAndErrors(t *testing.T) {
	m := New(&fakeController{})

	m, _ = send(m, StateMsg{State: usecase.State{
		AccountsErr: errors.New("connection refused"),
		History: reactive.Snapshot[string, []entity.TransactionRecord]{
			Key:   "C1",
			Value: reactive.Known([]entity.TransactionRecord{}),
		},
	}})
	m, _ = send(m, OutcomeMsg{Outcome: usecase.Outcome{Kind: usecase.OutcomeRejection, Form: entity.FormPayment, Reason: "insufficient funds"}})

	view := m.View()
	for _, want := range []string{"connection refused", "no transactions", "payment failed: insufficient funds"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestBridgeWithoutProgram(t *testing.T) {
	b := NewBridge()

	var _ usecase.Renderer = b
	var _ usecase.Notifier = b

	b.Render(usecase.State{})
	b.Notify(context.Background(), usecase.Outcome{})
}
