package ledgerfake

import (
	"encoding/json"
	"time"
)

// isoLayout mirrors the ISO-8601 text the ledger uses for createdAt.
const isoLayout = "2006-01-02T15:04:05.000000-07:00"

type healthResponse struct {
	OK bool `json:"ok"`
}

type accountResponse struct {
	AccountNo string `json:"accountNo"`
	Type      string `json:"type"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

type balanceResponse struct {
	AccountNo string      `json:"accountNo"`
	Balance   json.Number `json:"balance"`
}

type transactionResponse struct {
	Kind      string      `json:"kind"`
	FromAcct  string      `json:"fromAcct"`
	Target    string      `json:"target"`
	TxID      string      `json:"txId"`
	Amount    json.Number `json:"amount"`
	Currency  string      `json:"currency"`
	Channel   string      `json:"channel"`
	CreatedAt string      `json:"createdAt"`
}

func toTransactionResponse(m Movement) transactionResponse {
	return transactionResponse{
		Kind:      m.Kind,
		FromAcct:  m.From,
		Target:    m.Target,
		TxID:      m.TxID,
		Amount:    json.Number(m.Amount.String()),
		Currency:  m.Currency,
		Channel:   m.Channel,
		CreatedAt: m.CreatedAt.Format(isoLayout),
	}
}

type merchantResponse struct {
	MerchantID string `json:"merchantId"`
	Name       string `json:"name"`
	MCC        string `json:"mcc"`
}

// movementRequest is the body of both POST /api/transfer and POST /api/pay.
// Absent string fields stay nil so they can be told apart from blank ones.
type movementRequest struct {
	From       *string         `json:"from"`
	To         *string         `json:"to"`
	MerchantID *string         `json:"merchantId"`
	Amount     json.RawMessage `json:"amount"`
	Currency   *string         `json:"currency"`
	TxID       *string         `json:"txId"`
	Channel    *string         `json:"channel"`
	CreatedAt  *string         `json:"createdAt"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type seedResponse struct {
	Seeded bool `json:"seeded"`
}

func parseCreatedAt(v *string) (time.Time, error) {
	if v == nil || *v == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(*v)
}
