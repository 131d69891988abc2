package usecase

import (
	"testing"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
)

type seqID struct {
	n int
}

func (s *seqID) Generate() string {
	s.n++
	return "TX-" + string(rune('0'+s.n))
}

func TestFormsDefaults(t *testing.T) {
	f := NewForms(Defaults{Currency: "eur"}, nil)

	if got := f.Transfer(); got.Currency != "EUR" || got.Channel != DefaultChannel {
		t.Fatalf("unexpected transfer defaults: %+v", got)
	}
	if got := f.Payment(); got.Currency != "EUR" || got.Channel != DefaultChannel {
		t.Fatalf("unexpected payment defaults: %+v", got)
	}

	f = NewForms(Defaults{}, nil)
	if got := f.Transfer().Currency; got != DefaultCurrency {
		t.Fatalf("expected %s, got %s", DefaultCurrency, got)
	}
}

func TestFormsUpdateFieldKeepsDraftsApart(t *testing.T) {
	f := NewForms(Defaults{}, nil)

	if err := f.UpdateField(entity.FormTransfer, entity.FieldFrom, "A-1002"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.UpdateField(entity.FormTransfer, entity.FieldCurrency, "gbp"); err != nil {
		t.Fatalf("update: %v", err)
	}

	tr := f.Transfer()
	if tr.From != "A-1002" || tr.Currency != "GBP" || tr.Channel != DefaultChannel {
		t.Fatalf("unexpected transfer: %+v", tr)
	}
	if got := f.Payment(); got.From != "" || got.Currency != DefaultCurrency {
		t.Fatalf("payment must be untouched: %+v", got)
	}
}

func TestFormsUpdateFieldErrors(t *testing.T) {
	f := NewForms(Defaults{}, nil)

	err := f.UpdateField(entity.FormTransfer, entity.FieldMerchantID, "M1")
	perr, ok := pkgerror.As(err)
	if !ok || perr.Type() != pkgerror.TypeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := f.UpdateField(entity.Form("refund"), entity.FieldFrom, "x"); err == nil {
		t.Fatal("expected error for unknown form")
	}
}

func TestFormsGenerateTxIDAndReset(t *testing.T) {
	f := NewForms(Defaults{}, &seqID{})

	id, err := f.GenerateTxID(entity.FormPayment)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id != "TX-1" || f.Payment().TxID != "TX-1" {
		t.Fatalf("unexpected id %q / %+v", id, f.Payment())
	}
	if f.Transfer().TxID != "" {
		t.Fatal("transfer txId must stay empty")
	}

	_ = f.UpdateField(entity.FormPayment, entity.FieldAmount, "5")
	if err := f.Reset(entity.FormPayment); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := f.Payment(); got.TxID != "" || got.Amount != "" || got.Currency != DefaultCurrency {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}

func TestFormsGenerateTxIDWithoutGenerator(t *testing.T) {
	f := NewForms(Defaults{}, nil)
	if _, err := f.GenerateTxID(entity.FormTransfer); err == nil {
		t.Fatal("expected error without generator")
	}
}
