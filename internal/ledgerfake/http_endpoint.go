package ledgerfake

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgrouter"
)

const (
	defaultCurrency = "USD"
	defaultChannel  = "api"

	headerSeedToken = "X-Seed-Token"
)

var (
	errMissingFields = pkgerror.NewBusiness("missing fields", pkgerror.CodeInvalidFormat)
	errInvalidAmount = pkgerror.NewBusiness("invalid amount", pkgerror.CodeInvalidFormat)
	errInvalidBody   = pkgerror.NewInvalidFormat()
	errUnauthorized  = pkgerror.NewBusiness("unauthorized", pkgerror.CodeUnauthorized)
)

type HTTPEndpoint struct {
	store     *Store
	seedToken string
}

func (h *HTTPEndpoint) Health(ctx context.Context, r *http.Request) (any, error) {
	return healthResponse{OK: true}, nil
}

func (h *HTTPEndpoint) Accounts(ctx context.Context, r *http.Request) (any, error) {
	accts := h.store.Accounts()

	out := make([]accountResponse, 0, len(accts))
	for _, a := range accts {
		out = append(out, accountResponse{AccountNo: a.AccountNo, Type: a.Type, Currency: a.Currency, Status: a.Status})
	}
	return out, nil
}

func (h *HTTPEndpoint) Balance(ctx context.Context, r *http.Request) (any, error) {
	acct := pkgrouter.GetParam(ctx, "acct")
	balance := h.store.Balance(acct)

	return balanceResponse{AccountNo: acct, Balance: json.Number(balance.String())}, nil
}

func (h *HTTPEndpoint) CustomerTransactions(ctx context.Context, r *http.Request) (any, error) {
	history := h.store.CustomerHistory(pkgrouter.GetParam(ctx, "cid"))

	out := make([]transactionResponse, 0, len(history))
	for _, m := range history {
		out = append(out, toTransactionResponse(m))
	}
	return out, nil
}

func (h *HTTPEndpoint) Merchants(ctx context.Context, r *http.Request) (any, error) {
	ms := h.store.SearchMerchants(pkgrouter.GetQuery(r, "q"))

	out := make([]merchantResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, merchantResponse{MerchantID: m.MerchantID, Name: m.Name, MCC: m.MCC})
	}
	return out, nil
}

func (h *HTTPEndpoint) Transfer(ctx context.Context, r *http.Request) (any, error) {
	req, err := decodeMovement(r)
	if err != nil {
		return nil, err
	}

	if !present(req.From, req.To, req.Currency, req.TxID) || amountMissing(req.Amount) {
		return nil, errMissingFields
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	createdAt, err := parseCreatedAt(req.CreatedAt)
	if err != nil {
		return nil, pkgerror.NewBusiness("invalid createdAt", pkgerror.CodeInvalidFormat)
	}

	err = h.store.Transfer(TransferInput{
		TxID:      *req.TxID,
		From:      *req.From,
		To:        *req.To,
		Amount:    amount,
		Currency:  strings.ToUpper(orDefault(req.Currency, defaultCurrency)),
		Channel:   orDefault(req.Channel, defaultChannel),
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, err
	}

	return okResponse{OK: true}, nil
}

func (h *HTTPEndpoint) Pay(ctx context.Context, r *http.Request) (any, error) {
	req, err := decodeMovement(r)
	if err != nil {
		return nil, err
	}

	if !present(req.From, req.MerchantID, req.Currency, req.TxID) || amountMissing(req.Amount) {
		return nil, errMissingFields
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	createdAt, err := parseCreatedAt(req.CreatedAt)
	if err != nil {
		return nil, pkgerror.NewBusiness("invalid createdAt", pkgerror.CodeInvalidFormat)
	}

	err = h.store.Pay(PayInput{
		TxID:       *req.TxID,
		From:       *req.From,
		MerchantID: *req.MerchantID,
		Amount:     amount,
		Currency:   strings.ToUpper(orDefault(req.Currency, defaultCurrency)),
		Channel:    orDefault(req.Channel, defaultChannel),
		CreatedAt:  createdAt,
	})
	if err != nil {
		return nil, err
	}

	return okResponse{OK: true}, nil
}

func (h *HTTPEndpoint) SeedMinimal(ctx context.Context, r *http.Request) (any, error) {
	token := r.Header.Get(headerSeedToken)
	if h.seedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.seedToken)) != 1 {
		return nil, errUnauthorized
	}

	if err := SeedMinimal(h.store); err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return seedResponse{Seeded: true}, nil
}

func decodeMovement(r *http.Request) (movementRequest, error) {
	var req movementRequest
	if r.Body == nil {
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errInvalidBody
	}
	return req, nil
}

// present reports whether every field was sent with non-blank text.
func present(fields ...*string) bool {
	for _, f := range fields {
		if f == nil || strings.TrimSpace(*f) == "" {
			return false
		}
	}
	return true
}

func amountMissing(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// parseAmount accepts a JSON number or numeric string. Negative amounts are
// refused.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(bytes.TrimSpace(raw))

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
	}

	amount, err := decimal.NewFromString(text)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, errInvalidAmount
	}
	return amount, nil
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
