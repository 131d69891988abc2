package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkglog"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

// HeaderCorrelationID is sent on every request so ledger logs can be joined
// with the dashboard's.
const HeaderCorrelationID = "X-Correlation-ID"

var errUnhealthy = errors.New("ledger reported not ok")

// LedgerClient talks to the ledger HTTP API.
type LedgerClient struct {
	baseURL string
	http    *http.Client
	ids     pkguid.StringID
}

// NewLedgerClient builds a client for baseURL. A zero timeout disables the
// per-request deadline. ids supplies correlation IDs for calls whose context
// carries none; it may be nil.
func NewLedgerClient(baseURL string, timeout time.Duration, ids pkguid.StringID) *LedgerClient {
	return &LedgerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		ids:     ids,
	}
}

func (c *LedgerClient) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return pkgerror.NewServer(errUnhealthy)
	}
	return nil
}

func (c *LedgerClient) Accounts(ctx context.Context) ([]entity.Account, error) {
	var resp []accountResponse
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]entity.Account, 0, len(resp))
	for _, a := range resp {
		out = append(out, a.toEntity())
	}
	return out, nil
}

func (c *LedgerClient) Balance(ctx context.Context, accountNo string) (decimal.Decimal, error) {
	var resp balanceResponse
	path := "/api/account/" + url.PathEscape(accountNo) + "/balance"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (c *LedgerClient) CustomerTransactions(ctx context.Context, customerID string) ([]entity.TransactionRecord, error) {
	var resp []transactionResponse
	path := "/api/customer/" + url.PathEscape(customerID) + "/transactions"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]entity.TransactionRecord, 0, len(resp))
	for _, t := range resp {
		out = append(out, t.toEntity())
	}
	return out, nil
}

func (c *LedgerClient) SearchMerchants(ctx context.Context, query string) ([]entity.MerchantSuggestion, error) {
	var resp []merchantResponse
	path := "/api/merchants?" + url.Values{"q": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]entity.MerchantSuggestion, 0, len(resp))
	for _, m := range resp {
		out = append(out, entity.MerchantSuggestion{MerchantID: m.MerchantID, Name: m.Name, MCC: m.MCC})
	}
	return out, nil
}

func (c *LedgerClient) Transfer(ctx context.Context, d entity.TransferDraft) error {
	req := transferRequest{
		From:     d.From,
		To:       d.To,
		Amount:   d.Amount,
		Currency: d.Currency,
		TxID:     d.TxID,
		Channel:  d.Channel,
	}
	return c.do(ctx, http.MethodPost, "/api/transfer", req, nil)
}

func (c *LedgerClient) Pay(ctx context.Context, d entity.PaymentDraft) error {
	req := payRequest{
		From:       d.From,
		MerchantID: d.MerchantID,
		Amount:     d.Amount,
		Currency:   d.Currency,
		TxID:       d.TxID,
		Channel:    d.Channel,
	}
	return c.do(ctx, http.MethodPost, "/api/pay", req, nil)
}

func (c *LedgerClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerror.NewServer(fmt.Errorf("marshal %s %s: %w", method, path, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerror.NewServer(fmt.Errorf("build %s %s: %w", method, path, err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cid := c.correlationID(ctx); cid != "" {
		req.Header.Set(HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "ledger request failed", "method", method, "path", path, "error", err)
		return pkgerror.NewServer(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerror.NewServer(fmt.Errorf("read %s %s: %w", method, path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &errResp); err != nil {
				slog.WarnContext(ctx, "ledger returned unreadable error body", "method", method, "path", path, "status", resp.StatusCode, "error", err)
				return pkgerror.NewServer(fmt.Errorf("%s %s: status %d with unreadable body: %w", method, path, resp.StatusCode, err))
			}
		}
		slog.WarnContext(ctx, "ledger rejected request", "method", method, "path", path, "status", resp.StatusCode, "reason", errResp.Error)
		return pkgerror.NewRejected(errResp.Error, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerror.NewServer(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

func (c *LedgerClient) correlationID(ctx context.Context) string {
	if cid, ok := pkglog.LookupCorrelationID(ctx); ok {
		return cid
	}
	if c.ids == nil {
		return ""
	}
	return c.ids.Generate()
}
