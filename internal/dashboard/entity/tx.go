package entity

import "github.com/shopspring/decimal"

// TransactionRecord is one row of a customer's history. Records are immutable
// once returned by the ledger.
type TransactionRecord struct {
	Kind      TxKind
	TxID      string
	FromAcct  string
	Target    string
	Amount    decimal.Decimal
	Currency  string
	Channel   string
	CreatedAt string
}
