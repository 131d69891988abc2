package entity

import "github.com/shopspring/decimal"

type Account struct {
	AccountNo string
	Type      string
	Currency  string
	Status    string

	// Balance is only set when the accounts listing carries it. The selected
	// account's balance is always read through the balance endpoint.
	Balance decimal.NullDecimal
}

type MerchantSuggestion struct {
	MerchantID string
	Name       string
	MCC        string
}
