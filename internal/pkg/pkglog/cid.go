package pkglog

import "context"

// InvalidCorrelationID is what GetCorrelationID returns for a context without
// a correlation ID.
const InvalidCorrelationID = "[invalid_chain_id]"

type correlationIDKey struct{}

// LookupCorrelationID returns the correlation ID carried by ctx, if any. An
// empty ID counts as absent.
func LookupCorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	return cid, ok && cid != ""
}

// GetCorrelationID returns the correlation ID stored in the context, or
// InvalidCorrelationID.
func GetCorrelationID(ctx context.Context) string {
	if cid, ok := LookupCorrelationID(ctx); ok {
		return cid
	}
	return InvalidCorrelationID
}

// SetCorrelationID stores a correlation ID into the context. The ledger client
// forwards it on every request it makes with that context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
