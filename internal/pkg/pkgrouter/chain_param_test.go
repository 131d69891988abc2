package pkgrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestChainOrderSkipsNil(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("recover"), nil, mw("logging"))

	req := httptest.NewRequest(http.MethodGet, "http://ledger.local/api/accounts", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !reflect.DeepEqual(order, []string{"recover", "logging", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestGetParam(t *testing.T) {
	params := httprouter.Params{{Key: "acct", Value: "A-1002"}}
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, params)

	if got := GetParam(ctx, "acct"); got != "A-1002" {
		t.Fatalf("expected acct=A-1002, got %q", got)
	}
	if got := GetParam(ctx, "cid"); got != "" {
		t.Fatalf("expected empty cid, got %q", got)
	}
}

func TestGetQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://ledger.local/api/merchants?q=%20groc%20", nil)

	if got := GetQuery(req, "q"); got != "groc" {
		t.Fatalf("expected trimmed query, got %q", got)
	}
	if got := GetQuery(req, "limit"); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}
