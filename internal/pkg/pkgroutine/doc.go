// Package pkgroutine runs background work for the dashboard.
//
// A Manager bounds how many tasks run at once, collects their errors and
// turns panics into errors. Go returns immediately even when every slot is
// taken, so it is safe to call from the single event loop goroutine.
package pkgroutine
