package usecase

import (
	"fmt"
	"strings"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
)

// ReasonUnknown is reported when a failure carries no server reason.
const ReasonUnknown = "unknown"

type OutcomeKind string

const (
	OutcomeSuccess    OutcomeKind = "success"
	OutcomeValidation OutcomeKind = "validation"
	OutcomeRejection  OutcomeKind = "rejection"
	OutcomeTransport  OutcomeKind = "transport"
)

// Outcome is the terminal result of one submission attempt.
type Outcome struct {
	Kind    OutcomeKind
	Form    entity.Form
	TxID    string
	Reason  string
	Missing []entity.Field
	Err     error
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Message is the text shown to the user.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("%s %s accepted", o.Form, o.TxID)
	case OutcomeValidation:
		names := make([]string, 0, len(o.Missing))
		for _, f := range o.Missing {
			names = append(names, string(f))
		}
		return fmt.Sprintf("%s: missing required field: %s", o.Form, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s failed: %s", o.Form, o.Reason)
	}
}

func validationOutcome(d entity.Draft, missing []entity.Field) Outcome {
	return Outcome{
		Kind:    OutcomeValidation,
		Form:    d.Form(),
		TxID:    d.IdempotencyKey(),
		Missing: missing,
		Err:     pkgerror.NewInvalidInput(fmt.Errorf("missing required field: %v", missing)),
	}
}

// classify maps the endpoint result onto an outcome. Rejections carry the
// server's reason verbatim.
func classify(d entity.Draft, err error) Outcome {
	o := Outcome{Form: d.Form(), TxID: d.IdempotencyKey()}
	if err == nil {
		o.Kind = OutcomeSuccess
		return o
	}

	o.Err = err
	o.Kind = OutcomeTransport
	if perr, ok := pkgerror.As(err); ok && perr.Type() == pkgerror.TypeBusiness {
		o.Kind = OutcomeRejection
		o.Reason = perr.Msg()
	}

	if o.Reason == "" {
		o.Reason = ReasonUnknown
	}

	return o
}
