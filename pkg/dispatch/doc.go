// Package dispatch provides the cooperative event loop for the
// high-level application.
package dispatch

// The loop is single-threaded: sources (a periodic timer, a channel
// readiness watcher) queue events, and Dispatch runs exactly one bound
// callback per call on the calling goroutine. Blocking waits can be
// woken early with Interrupt, which reports as an EINTR-flavored error
// so callers can tell an interrupted wait from a dispatch failure.
