// Package pkguid generates the identifiers the dashboard hands out: txIds
// for submission drafts and correlation IDs for ledger requests.
//
// StringID is the interface callers depend on. NewStringID picks the
// implementation by name so the strategy can come from configuration.
package pkguid
