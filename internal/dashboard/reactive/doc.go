// Package reactive holds the primitives that keep asynchronously fetched views
// consistent with input that changes faster than responses return.
//
// Every primitive is owned by one event loop: its methods must be called from
// functions running on the Scheduler, and fetches report back by posting to it.
// Each fetch carries the epoch that was live when it was issued. A completion
// whose epoch is no longer live is dropped without touching state, which is how
// an out-of-order response for a superseded key is kept from overwriting fresh
// data.
package reactive
