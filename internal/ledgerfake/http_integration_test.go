package ledgerfake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/outbound"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

func newTestServer(t *testing.T, store *Store) *httptest.Server {
	t.Helper()
	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, store, "seed-secret")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestLedgerContractThroughClient(t *testing.T) {
	srv := newTestServer(t, seededStore(t))
	client := outbound.NewLedgerClient(srv.URL, 2*time.Second, nil)
	ctx := context.Background()

	if err := client.Health(ctx); err != nil {
		t.Fatalf("Health: %v", err)
	}

	accts, err := client.Accounts(ctx)
	if err != nil || len(accts) != 2 || accts[0].AccountNo != "A-1002" || accts[0].Status != "active" {
		t.Fatalf("Accounts: %+v %v", accts, err)
	}

	err = client.Transfer(ctx, entity.TransferDraft{From: "A-1003", To: "A-1002", Amount: "100", Currency: "USD", TxID: "T1", Channel: "ui"})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	err = client.Pay(ctx, entity.PaymentDraft{From: "A-1002", MerchantID: "M-Grocery", Amount: "12.34", Currency: "usd", TxID: "P1", Channel: "ui"})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}

	bal, err := client.Balance(ctx, "A-1002")
	if err != nil || bal.StringFixed(2) != "87.66" {
		t.Fatalf("Balance: %s %v", bal, err)
	}

	txs, err := client.CustomerTransactions(ctx, "C001")
	if err != nil || len(txs) != 1 {
		t.Fatalf("CustomerTransactions: %+v %v", txs, err)
	}
	if txs[0].Kind != entity.TxKindPayment || txs[0].Target != "M-Grocery" || txs[0].Currency != "USD" || txs[0].Channel != "ui" {
		t.Fatalf("unexpected record %+v", txs[0])
	}

	ms, err := client.SearchMerchants(ctx, "groc")
	if err != nil || len(ms) != 1 || ms[0].MerchantID != "M-Grocery" {
		t.Fatalf("SearchMerchants: %+v %v", ms, err)
	}

	err = client.Transfer(ctx, entity.TransferDraft{From: "A-1003", To: "A-1002", Amount: "1", Currency: "USD", TxID: "T1"})
	perr, ok := pkgerror.As(err)
	if !ok || perr.Msg() != "duplicate txId" || perr.Code() != pkgerror.CodeConflict {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestTransferValidation(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	cases := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"missing to", `{"from":"A-1002","amount":"1","currency":"USD","txId":"T1"}`, 400, "missing fields"},
		{"blank txId", `{"from":"A-1002","to":"A-1003","amount":"1","currency":"USD","txId":"  "}`, 400, "missing fields"},
		{"missing amount", `{"from":"A-1002","to":"A-1003","currency":"USD","txId":"T1"}`, 400, "missing fields"},
		{"bad amount", `{"from":"A-1002","to":"A-1003","amount":"ten","currency":"USD","txId":"T1"}`, 400, "invalid amount"},
		{"negative amount", `{"from":"A-1002","to":"A-1003","amount":-5,"currency":"USD","txId":"T1"}`, 400, "invalid amount"},
		{"unknown account", `{"from":"A-1002","to":"A-9","amount":5,"currency":"USD","txId":"T1"}`, 400, "account not found"},
		{"not json", `nope`, 400, "invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := post(t, srv.URL+"/api/transfer", tc.body, nil)
			if status != tc.status || body["error"] != tc.msg {
				t.Fatalf("got %d %v, want %d %q", status, body, tc.status, tc.msg)
			}
		})
	}
}

func TestPayNumericAmountAndDefaults(t *testing.T) {
	store := seededStore(t)
	srv := newTestServer(t, store)

	status, body := post(t, srv.URL+"/api/pay", `{"from":"A-1002","merchantId":"M-Grocery","amount":2.5,"currency":"eur","txId":"P9"}`, nil)
	if status != http.StatusOK || body["ok"] != true {
		t.Fatalf("got %d %v", status, body)
	}

	history := store.CustomerHistory("C001")
	if len(history) != 1 || history[0].Currency != "EUR" || history[0].Channel != defaultChannel {
		t.Fatalf("unexpected stored payment %+v", history)
	}
}

func TestSeedEndpointRequiresToken(t *testing.T) {
	store := NewStore(nil)
	srv := newTestServer(t, store)

	status, body := post(t, srv.URL+"/api/seed/minimal", `{}`, map[string]string{"X-Seed-Token": "wrong"})
	if status != http.StatusUnauthorized || body["error"] != "unauthorized" {
		t.Fatalf("got %d %v", status, body)
	}

	status, body = post(t, srv.URL+"/api/seed/minimal", `{}`, map[string]string{"X-Seed-Token": "seed-secret"})
	if status != http.StatusOK || body["seeded"] != true {
		t.Fatalf("got %d %v", status, body)
	}
	if len(store.Accounts()) != 2 {
		t.Fatal("expected seeded accounts")
	}
}

func TestBalanceUnknownAccountIsZero(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	resp, err := http.Get(srv.URL + "/api/account/A-404/balance")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["accountNo"] != "A-404" || body["balance"] != float64(0) {
		t.Fatalf("unexpected body %v", body)
	}
}
