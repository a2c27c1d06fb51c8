// Package layout maps linear document offsets to geometry inside a bounded
// rendering container.
//
// The Provider interface abstracts the measurement backend so the overlay
// engine is testable without a live rendering surface and portable across
// backends (browser-like DOM, headless layout engine, terminal grid). Grid
// is the built-in monospace backend. Estimate is the approximate fallback
// used when precise measurement fails.
package layout
