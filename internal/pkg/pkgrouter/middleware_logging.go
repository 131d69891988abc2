package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

// maxLoggedBodyBytes caps how much of a request body is decoded for logging
// and how much of a response body is kept to read an error reason from.
const maxLoggedBodyBytes = 16 * 1024

const redacted = "***"

// secretKeys are header names and JSON keys (lowercased) whose values never
// reach the log. The seed token guards the reseed endpoint.
//
//nolint:gochecknoglobals // read-only lookup table
var secretKeys = map[string]struct{}{
	"x-seed-token":  {},
	"seedtoken":     {},
	"authorization": {},
}

// movementKeys are the ledger body fields lifted to top-level log attributes
// so a transfer or payment can be found by any of them.
//
//nolint:gochecknoglobals // read-only lookup table
var movementKeys = []string{"txId", "from", "to", "merchantId", "accountNo"}

// routeParamAttrs names the log attribute for each ledger path parameter.
//
//nolint:gochecknoglobals // read-only lookup table
var routeParamAttrs = map[string]string{
	"acct": "accountNo",
	"cid":  "customerId",
}

func isSecret(key string) bool {
	_, found := secretKeys[strings.ToLower(key)]
	return found
}

func redactHeaders(headers http.Header) http.Header {
	out := headers.Clone()
	for key := range out {
		if isSecret(key) {
			out.Set(key, redacted)
		}
	}
	return out
}

func redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if isSecret(k) {
				out[k] = redacted
				continue
			}
			out[k] = redact(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = redact(inner)
		}
		return out
	default:
		return v
	}
}

// decodeBody returns what to log for a request body, plus the body as a JSON
// object when it is one. Ledger endpoints only accept JSON.
func decodeBody(raw []byte) (any, map[string]any) {
	if len(raw) == 0 {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		obj, _ := parsed.(map[string]any)
		return redact(parsed), obj
	}

	if !utf8.Valid(raw) {
		return "<binary body omitted>", nil
	}
	if len(raw) > maxLoggedBodyBytes {
		return string(raw[:maxLoggedBodyBytes]) + "...(truncated)", nil
	}
	return string(raw), nil
}

// ledgerAttrs returns the account, customer and movement identifiers carried
// by r's path, query and decoded body.
func ledgerAttrs(r *http.Request, body map[string]any) []slog.Attr {
	var attrs []slog.Attr
	for _, p := range httprouter.ParamsFromContext(r.Context()) {
		if name, ok := routeParamAttrs[p.Key]; ok && p.Value != "" {
			attrs = append(attrs, slog.String(name, p.Value))
		}
	}
	if q := r.URL.Query().Get("q"); q != "" {
		attrs = append(attrs, slog.String("merchantQuery", q))
	}
	for _, key := range movementKeys {
		if v, ok := body[key].(string); ok && v != "" {
			attrs = append(attrs, slog.String(key, v))
		}
	}
	return attrs
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	head   bytes.Buffer
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if room := maxLoggedBodyBytes - w.head.Len(); room > 0 {
		w.head.Write(p[:min(len(p), room)])
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// reason returns the ledger's {"error": "..."} message, if the response had one.
func (w *statusRecorder) reason() string {
	var body errorResponse
	if err := json.Unmarshal(w.head.Bytes(), &body); err != nil {
		return ""
	}
	return body.Error
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// logRequests logs one line when a ledger request arrives and one when it is
// answered. Both carry the request's ledger identifiers as attributes.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var raw []byte
		if r.Body != nil {
			//nolint:errcheck // a short read only shortens the log
			raw, _ = io.ReadAll(r.Body)
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		logged, obj := decodeBody(raw)
		ids := ledgerAttrs(r, obj)
		base := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("route", matchedRoutePath(r)),
		}

		in := append(append([]slog.Attr{}, base...), ids...)
		in = append(in,
			slog.Any("headers", redactHeaders(r.Header)),
			slog.Any("body", logged),
		)
		slog.LogAttrs(r.Context(), slog.LevelInfo, "ledger request received", in...)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		out := append(append([]slog.Attr{}, base...), ids...)
		out = append(out,
			slog.Int("status", status),
			slog.Int("bytes", rec.bytes),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		)
		if status >= http.StatusBadRequest {
			out = append(out, slog.String("reason", rec.reason()))
		}
		slog.LogAttrs(r.Context(), statusLevel(status), "ledger response sent", out...)
	})
}
