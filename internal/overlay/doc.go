// Package overlay reconciles remote collaborator cursors into renderable
// position indicators over a shared editing surface.
//
// The reconciler owns the live position cache: it re-resolves every remote
// cursor whenever the collaborator set or the document content changes,
// projecting precise coordinates through a layout.Provider and degrading
// to the approximate estimator when measurement fails. The renderer turns
// the cache into geometric descriptors (badge, caret, selection) for the
// UI layer to draw.
package overlay
