package runner

import "context"

// Page is the slice of the automation engine the runner drives. The
// production implementation wraps a playwright page; tests substitute stubs.
//
// Every method that waits is bounded by its timeout argument, in
// milliseconds. Implementations must re-resolve frame handles on each call
// rather than caching them, because navigation invalidates prior frames.
type Page interface {
	// Goto requests navigation to url, waiting only for network commit, not
	// full load.
	Goto(url string, timeoutMs float64) error

	// WaitReady waits for a bounded content-ready signal on the page and its
	// frames. It is best effort: expiry is reported as an error but callers
	// are expected to proceed regardless.
	WaitReady(timeoutMs float64) error

	// Scroll issues a relative viewport scroll.
	Scroll(deltaX, deltaY float64) error

	// InnerHeight reports the viewport height in CSS pixels, read from the
	// live page.
	InnerHeight() (float64, error)

	// IsVisible reports whether a visible element matches selector in the
	// page or any of its frames before the timeout elapses. A timeout is a
	// false result, not an error; only engine breakage returns an error.
	IsVisible(selector string, timeoutMs float64) (bool, error)

	// Fill types value into the first actionable element matching selector.
	Fill(selector, value string, timeoutMs float64) error

	// Click clicks the first actionable element matching selector.
	Click(selector string, timeoutMs float64) error
}

// Session is one exclusive browser session: the runner owns it for the
// duration of a single scenario run and releases it exactly once.
type Session interface {
	Page() Page

	// Release closes page, context, and browser in reverse-acquisition
	// order, swallowing errors at each stage. Safe to call from any state.
	Release()
}

// SessionProvider acquires sessions. The browser package's manager is the
// production implementation.
type SessionProvider interface {
	Acquire(ctx context.Context) (Session, error)
}
