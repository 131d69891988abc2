package pkgrouter

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkglog"
)

// Generator generates a unique string (used for correlation IDs).
type Generator interface {
	Generate() string
}

// HeaderCorrelationID carries the dashboard's correlation ID. It is echoed on
// every response so both sides of a ledger call log the same value.
const HeaderCorrelationID = "X-Correlation-ID"

const maxCIDLen = 128

// cleanCID trims v and rejects values that would corrupt a log line or a
// response header. Overlong values are cut, not rejected.
func cleanCID(v string) string {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, unicode.IsControl) >= 0 {
		return ""
	}
	if len(v) > maxCIDLen {
		v = v[:maxCIDLen]
	}
	return v
}

// correlate adopts the caller's correlation ID or mints one with uid. With a
// nil uid, requests without the header pass through untagged.
func correlate(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := cleanCID(r.Header.Get(HeaderCorrelationID))
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}
			if cid == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(pkglog.SetCorrelationID(r.Context(), cid)))
		})
	}
}
