package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/usecase"
)

// StateMsg carries a new dashboard snapshot into the program.
type StateMsg struct {
	State usecase.State
}

// OutcomeMsg carries a submission outcome into the program.
type OutcomeMsg struct {
	Outcome usecase.Outcome
}

// Bridge forwards controller output to a running program. It implements
// usecase.Renderer and usecase.Notifier. Output produced before Attach is
// dropped.
type Bridge struct {
	program atomic.Pointer[tea.Program]
}

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Attach(p *tea.Program) {
	b.program.Store(p)
}

func (b *Bridge) Render(s usecase.State) {
	if p := b.program.Load(); p != nil {
		p.Send(StateMsg{State: s})
	}
}

func (b *Bridge) Notify(_ context.Context, o usecase.Outcome) {
	if p := b.program.Load(); p != nil {
		p.Send(OutcomeMsg{Outcome: o})
	}
}
