package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
)

const noBalance = "—"

var (
	colorAccent = lipgloss.Color("63")
	colorMuted  = lipgloss.Color("241")
	colorGood   = lipgloss.Color("42")
	colorBad    = lipgloss.Color("196")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
	focusStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Width(10)
	pickStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	okStyle      = lipgloss.NewStyle().Foreground(colorGood)
	errStyle     = lipgloss.NewStyle().Foreground(colorBad)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ledger Dashboard"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Account"))
	b.WriteString("\n")
	b.WriteString(m.accountLine())
	b.WriteString("\n")
	b.WriteString(m.balanceLine())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("History"))
	b.WriteString("\n")
	b.WriteString(m.renderSlot(m.indexOf(slotCustomer)))
	b.WriteString("\n")
	b.WriteString(m.historyBlock())

	b.WriteString(sectionStyle.Render(pendingTitle("Transfer", m.state.TransferPending)))
	b.WriteString("\n")
	m.writeForm(&b, entity.FormTransfer)

	b.WriteString(sectionStyle.Render(pendingTitle("Pay", m.state.PaymentPending)))
	b.WriteString("\n")
	m.writeForm(&b, entity.FormPayment)

	if m.status != "" {
		b.WriteString("\n")
		if m.statusOK {
			b.WriteString(okStyle.Render(m.status))
		} else {
			b.WriteString(errStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab focus • ←/→ account • ↑/↓/enter merchant • ctrl+g txId • ctrl+t transfer • ctrl+p pay • ctrl+x reset • ctrl+r history • ctrl+b balance • ctrl+a accounts • esc quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) accountLine() string {
	label := labelStyle
	if m.slots[m.focus].kind == slotAccount {
		label = focusStyle
	}

	switch {
	case m.state.AccountsLoading:
		return label.Render("Account") + m.spinner.View() + " loading accounts"
	case m.state.AccountsErr != nil:
		return label.Render("Account") + errStyle.Render("accounts unavailable: "+m.state.AccountsErr.Error())
	}

	if m.selected == "" {
		return label.Render("Account") + "Select account"
	}

	for _, a := range m.state.Accounts {
		if a.AccountNo == m.selected {
			return label.Render("Account") + fmt.Sprintf("%s (%s, %s)", a.AccountNo, a.Type, a.Currency)
		}
	}

	return label.Render("Account") + m.selected
}

func (m Model) balanceLine() string {
	bal := m.state.Balance
	out := labelStyle.Render("Balance")

	if v, ok := bal.Value.Get(); ok {
		out += v.StringFixed(2)
	} else {
		out += noBalance
	}
	if bal.Loading {
		out += " " + m.spinner.View()
	}
	if bal.Err != nil {
		out += " " + errStyle.Render(bal.Err.Error())
	}

	return out
}

func (m Model) historyBlock() string {
	h := m.state.History

	if h.Loading {
		return m.spinner.View() + " loading history\n"
	}
	if h.Err != nil {
		return errStyle.Render("history unavailable: "+h.Err.Error()) + "\n"
	}

	rows, ok := h.Value.Get()
	if !ok {
		return labelStyle.Render("") + "enter a customer id\n"
	}
	if len(rows) == 0 {
		return labelStyle.Render("") + "no transactions\n"
	}

	return historyTable(rows)
}

func historyTable(rows []entity.TransactionRecord) string {
	var b strings.Builder

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Time", "Kind", "TxId", "From", "To", "Amount", "CCY", "Channel"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, r := range rows {
		table.Append([]string{
			r.CreatedAt,
			string(r.Kind),
			r.TxID,
			r.FromAcct,
			r.Target,
			r.Amount.StringFixed(2),
			r.Currency,
			r.Channel,
		})
	}

	table.Render()

	return b.String()
}

func (m Model) writeForm(b *strings.Builder, form entity.Form) {
	for i, s := range m.slots {
		if s.form != form {
			continue
		}
		b.WriteString(m.renderSlot(i))
		b.WriteString("\n")

		if s.kind == slotMerchantQuery {
			b.WriteString(m.suggestionList())
		}
	}
}

func (m Model) suggestionList() string {
	var b strings.Builder
	for i, sug := range m.state.Suggestions {
		line := fmt.Sprintf("%s (%s) • %s", sug.Name, sug.MCC, sug.MerchantID)
		if i == m.pick && m.slots[m.focus].kind == slotMerchantQuery {
			b.WriteString(labelStyle.Render("") + pickStyle.Render("> "+line))
		} else {
			b.WriteString(labelStyle.Render("") + "  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSlot(i int) string {
	s := m.slots[i]
	label := labelStyle
	if i == m.focus {
		label = focusStyle
	}
	return label.Render(s.label) + s.input.View()
}

func (m Model) indexOf(kind slotKind) int {
	for i, s := range m.slots {
		if s.kind == kind {
			return i
		}
	}
	return 0
}

func pendingTitle(title string, pending int) string {
	if pending == 0 {
		return title
	}
	return fmt.Sprintf("%s (%d in flight)", title, pending)
}
