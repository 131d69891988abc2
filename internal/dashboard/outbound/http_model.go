package outbound

import (
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
)

// Kind labels used by the ledger's history endpoint.
const (
	wireKindTransfer = "Transfers"
	wireKindPayment  = "Pays"
)

type accountResponse struct {
	AccountNo string           `json:"accountNo"`
	Type      string           `json:"type"`
	Currency  string           `json:"currency"`
	Status    string           `json:"status"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
}

func (a accountResponse) toEntity() entity.Account {
	acct := entity.Account{
		AccountNo: a.AccountNo,
		Type:      a.Type,
		Currency:  a.Currency,
		Status:    a.Status,
	}
	if a.Balance != nil {
		acct.Balance = decimal.NewNullDecimal(*a.Balance)
	}
	return acct
}

type balanceResponse struct {
	AccountNo string          `json:"accountNo"`
	Balance   decimal.Decimal `json:"balance"`
}

type transactionResponse struct {
	Kind      string          `json:"kind"`
	FromAcct  string          `json:"fromAcct"`
	Target    *string         `json:"target"`
	TxID      string          `json:"txId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Channel   string          `json:"channel"`
	CreatedAt string          `json:"createdAt"`
}

func (t transactionResponse) toEntity() entity.TransactionRecord {
	kind := entity.TxKindTransfer
	if t.Kind == wireKindPayment {
		kind = entity.TxKindPayment
	}

	var target string
	if t.Target != nil {
		target = *t.Target
	}

	return entity.TransactionRecord{
		Kind:      kind,
		TxID:      t.TxID,
		FromAcct:  t.FromAcct,
		Target:    target,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Channel:   t.Channel,
		CreatedAt: t.CreatedAt,
	}
}

type merchantResponse struct {
	MerchantID string `json:"merchantId"`
	Name       string `json:"name"`
	MCC        string `json:"mcc"`
}

type transferRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	TxID     string `json:"txId"`
	Channel  string `json:"channel"`
}

type payRequest struct {
	From       string `json:"from"`
	MerchantID string `json:"merchantId"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	TxID       string `json:"txId"`
	Channel    string `json:"channel"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}
