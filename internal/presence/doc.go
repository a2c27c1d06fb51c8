// Package presence supplies the stream of remote collaborator cursor
// samples consumed by the overlay engine.
//
// Samples are replace-not-patch: the most recently received sample for a
// user supersedes all prior ones. The in-memory Feed applies an optional
// TTL at delivery time, making removal of silent collaborators an explicit
// contract rather than relying on the transport to emit removals.
package presence
