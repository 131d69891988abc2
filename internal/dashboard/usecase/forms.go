package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

const (
	DefaultCurrency = "USD"
	DefaultChannel  = "ui"
)

var errNoIDGenerator = errors.New("no id generator configured")

// Defaults are the values a draft starts with and returns to on reset.
type Defaults struct {
	Currency string
	Channel  string
}

// Forms holds the transfer and payment drafts. The two never share storage.
type Forms struct {
	defaults Defaults
	ids      pkguid.StringID
	transfer entity.TransferDraft
	payment  entity.PaymentDraft
}

func NewForms(defaults Defaults, ids pkguid.StringID) *Forms {
	if defaults.Currency == "" {
		defaults.Currency = DefaultCurrency
	}
	if defaults.Channel == "" {
		defaults.Channel = DefaultChannel
	}
	defaults.Currency = strings.ToUpper(defaults.Currency)

	f := &Forms{defaults: defaults, ids: ids}
	f.transfer = f.blankTransfer()
	f.payment = f.blankPayment()

	return f
}

func (f *Forms) Transfer() entity.TransferDraft {
	return f.transfer
}

func (f *Forms) Payment() entity.PaymentDraft {
	return f.payment
}

// UpdateField merges one field into form's draft. Nothing is validated here.
func (f *Forms) UpdateField(form entity.Form, field entity.Field, value string) error {
	switch form {
	case entity.FormTransfer:
		next, err := f.transfer.With(field, value)
		if err != nil {
			return pkgerror.NewInvalidInput(err)
		}
		f.transfer = next
	case entity.FormPayment:
		next, err := f.payment.With(field, value)
		if err != nil {
			return pkgerror.NewInvalidInput(err)
		}
		f.payment = next
	default:
		return unknownForm(form)
	}

	return nil
}

// GenerateTxID fills form's txId with a fresh identifier and returns it.
func (f *Forms) GenerateTxID(form entity.Form) (string, error) {
	if f.ids == nil {
		return "", pkgerror.NewServer(errNoIDGenerator)
	}

	id := f.ids.Generate()
	if err := f.UpdateField(form, entity.FieldTxID, id); err != nil {
		return "", err
	}

	return id, nil
}

// Reset restores form to its defaults.
func (f *Forms) Reset(form entity.Form) error {
	switch form {
	case entity.FormTransfer:
		f.transfer = f.blankTransfer()
	case entity.FormPayment:
		f.payment = f.blankPayment()
	default:
		return unknownForm(form)
	}

	return nil
}

func (f *Forms) blankTransfer() entity.TransferDraft {
	return entity.TransferDraft{Currency: f.defaults.Currency, Channel: f.defaults.Channel}
}

func (f *Forms) blankPayment() entity.PaymentDraft {
	return entity.PaymentDraft{Currency: f.defaults.Currency, Channel: f.defaults.Channel}
}

func unknownForm(form entity.Form) error {
	return pkgerror.NewInvalidInput(fmt.Errorf("unknown form %q", form))
}
