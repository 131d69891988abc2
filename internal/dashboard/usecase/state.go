package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive"
)

// State is an immutable snapshot of the dashboard handed to the Renderer.
// Slices are shared with the controller and must not be modified.
type State struct {
	Version uint64

	Accounts        []entity.Account
	AccountsLoading bool
	AccountsErr     error

	Selected string
	Balance  reactive.Snapshot[string, decimal.Decimal]

	CustomerID string
	History    reactive.Snapshot[string, []entity.TransactionRecord]

	Transfer entity.TransferDraft
	Payment  entity.PaymentDraft

	MerchantQuery string
	Suggestions   []entity.MerchantSuggestion

	TransferPending int
	PaymentPending  int
	LastOutcome     *Outcome
}
