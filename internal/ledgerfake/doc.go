// Package ledgerfake is an in-memory ledger that speaks the same HTTP contract
// as the real ledger service. It backs local runs and end-to-end tests.
package ledgerfake
