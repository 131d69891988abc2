// Package pkgloop provides a single-writer event loop.
//
// All state owned by a Loop is touched only from functions posted to it, so
// that state needs no locks. Posting never blocks: the mailbox is unbounded,
// which lets background goroutines report completions even while the loop is
// itself waiting to start new work.
package pkgloop
