package entity

import (
	"reflect"
	"testing"
)

func TestTransferDraftWith(t *testing.T) {
	d := TransferDraft{From: "A-1002", Channel: "ui"}

	next, err := d.With(FieldCurrency, "usd")
	if err != nil {
		t.Fatalf("with currency: %v", err)
	}
	if next.Currency != "USD" {
		t.Fatalf("expected upper-cased currency, got %q", next.Currency)
	}
	if next.From != "A-1002" || next.Channel != "ui" {
		t.Fatalf("other fields must be preserved: %+v", next)
	}
	if d.Currency != "" {
		t.Fatalf("original draft must not change: %+v", d)
	}

	if _, err := d.With(FieldMerchantID, "M1"); err == nil {
		t.Fatal("expected error for merchantId on transfer")
	}
}

func TestPaymentDraftWith(t *testing.T) {
	d, err := PaymentDraft{}.With(FieldMerchantID, "M-Grocery")
	if err != nil {
		t.Fatalf("with merchant: %v", err)
	}
	if d.MerchantID != "M-Grocery" {
		t.Fatalf("unexpected merchant: %q", d.MerchantID)
	}
	if _, err := d.With(FieldTo, "A-1003"); err == nil {
		t.Fatal("expected error for to on payment")
	}
}

func TestDraftMissing(t *testing.T) {
	tr := TransferDraft{From: "A-1002", Amount: "10", Currency: "USD"}
	if got := tr.Missing(); !reflect.DeepEqual(got, []Field{FieldTo, FieldTxID}) {
		t.Fatalf("unexpected missing transfer fields: %v", got)
	}

	pay := PaymentDraft{From: "A-1002", MerchantID: "M1", Amount: "5", Currency: "USD", TxID: "T9"}
	if got := pay.Missing(); len(got) != 0 {
		t.Fatalf("expected complete payment, missing %v", got)
	}

	var d Draft = pay
	if d.Form() != FormPayment || d.Source() != "A-1002" || d.IdempotencyKey() != "T9" {
		t.Fatalf("unexpected draft view: %v %v %v", d.Form(), d.Source(), d.IdempotencyKey())
	}
}
