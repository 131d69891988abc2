package ledgerfake

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID   string
	Name string
}

type Account struct {
	AccountNo string
	Type      string
	Currency  string
	Status    string
}

type Merchant struct {
	MerchantID string
	Name       string
	MCC        string
}

// Kind labels as they appear on the wire.
const (
	KindTransfer = "Transfers"
	KindPay      = "Pays"
)

// Movement is a stored transfer or payment. Target is the destination account
// for transfers and the merchant id for payments.
type Movement struct {
	Kind      string
	TxID      string
	From      string
	Target    string
	Amount    decimal.Decimal
	Currency  string
	Channel   string
	CreatedAt time.Time
}

// TransferInput is a validated transfer request.
type TransferInput struct {
	TxID      string
	From      string
	To        string
	Amount    decimal.Decimal
	Currency  string
	Channel   string
	CreatedAt time.Time
}

// PayInput is a validated payment request.
type PayInput struct {
	TxID       string
	From       string
	MerchantID string
	Amount     decimal.Decimal
	Currency   string
	Channel    string
	CreatedAt  time.Time
}
