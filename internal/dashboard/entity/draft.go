package entity

import (
	"fmt"
	"strings"
)

// Draft is the read-only view of a submission form used by the submitter.
type Draft interface {
	Form() Form
	Source() string
	IdempotencyKey() string
	// Missing lists the required fields that are still empty, in form order.
	Missing() []Field
}

type TransferDraft struct {
	From     string
	To       string
	Amount   string
	Currency string
	TxID     string
	Channel  string
}

func (d TransferDraft) Form() Form             { return FormTransfer }
func (d TransferDraft) Source() string         { return d.From }
func (d TransferDraft) IdempotencyKey() string { return d.TxID }

func (d TransferDraft) Missing() []Field {
	return missing([]requirement{
		{FieldFrom, d.From},
		{FieldTo, d.To},
		{FieldAmount, d.Amount},
		{FieldCurrency, d.Currency},
		{FieldTxID, d.TxID},
	})
}

// With returns a copy of d with field set to value. Currency is upper-cased.
func (d TransferDraft) With(field Field, value string) (TransferDraft, error) {
	switch field {
	case FieldFrom:
		d.From = value
	case FieldTo:
		d.To = value
	case FieldAmount:
		d.Amount = value
	case FieldCurrency:
		d.Currency = strings.ToUpper(value)
	case FieldTxID:
		d.TxID = value
	case FieldChannel:
		d.Channel = value
	default:
		return d, fmt.Errorf("transfer has no field %q", field)
	}
	return d, nil
}

type PaymentDraft struct {
	From       string
	MerchantID string
	Amount     string
	Currency   string
	TxID       string
	Channel    string
}

func (d PaymentDraft) Form() Form             { return FormPayment }
func (d PaymentDraft) Source() string         { return d.From }
func (d PaymentDraft) IdempotencyKey() string { return d.TxID }

func (d PaymentDraft) Missing() []Field {
	return missing([]requirement{
		{FieldFrom, d.From},
		{FieldMerchantID, d.MerchantID},
		{FieldAmount, d.Amount},
		{FieldCurrency, d.Currency},
		{FieldTxID, d.TxID},
	})
}

// With returns a copy of d with field set to value. Currency is upper-cased.
func (d PaymentDraft) With(field Field, value string) (PaymentDraft, error) {
	switch field {
	case FieldFrom:
		d.From = value
	case FieldMerchantID:
		d.MerchantID = value
	case FieldAmount:
		d.Amount = value
	case FieldCurrency:
		d.Currency = strings.ToUpper(value)
	case FieldTxID:
		d.TxID = value
	case FieldChannel:
		d.Channel = value
	default:
		return d, fmt.Errorf("payment has no field %q", field)
	}
	return d, nil
}

type requirement struct {
	field Field
	value string
}

func missing(reqs []requirement) []Field {
	var out []Field
	for _, r := range reqs {
		if r.value == "" {
			out = append(out, r.field)
		}
	}
	return out
}
