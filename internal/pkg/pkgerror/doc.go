// Package pkgerror is the error vocabulary shared by the dashboard and the
// in-process ledger.
//
// Error carries a message, a Type and a Code. The ledger maps the code to an
// HTTP status with StatusCode; the dashboard goes the other way with
// CodeFromStatus and NewRejected so a refused submission keeps the server's
// reason.
package pkgerror
