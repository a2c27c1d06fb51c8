// Package app wires the cursorcast components together: configuration,
// presence feed, reconciler, and renderer.
package app

import (
	"fmt"

	"github.com/dshills/cursorcast/internal/config"
	"github.com/dshills/cursorcast/internal/document"
	"github.com/dshills/cursorcast/internal/layout"
	"github.com/dshills/cursorcast/internal/logging"
	"github.com/dshills/cursorcast/internal/overlay"
	"github.com/dshills/cursorcast/internal/presence"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses defaults.
	ConfigPath string

	// LocalUserID identifies the observing user; their cursor is never
	// rendered.
	LocalUserID string

	// Username is the observing user's display name, sent with outgoing
	// cursor samples.
	Username string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// FeedURL overrides the configured presence feed endpoint when
	// non-empty.
	FeedURL string
}

// App owns the running overlay engine.
type App struct {
	opts   Options
	cfg    config.Config
	logger *logging.Logger

	feed       *presence.Feed
	grid       *layout.Grid
	reconciler *overlay.Reconciler
	renderer   *overlay.Renderer

	client  *presence.WSClient
	watcher *config.Watcher
}

// New builds the application from its options and configuration file.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.FeedURL != "" {
		cfg.Feed.URL = opts.FeedURL
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logCfg)

	feed := presence.NewFeed(presence.WithTTL(cfg.Feed.TTL()))
	grid := layout.NewGrid(nil, layout.DefaultGridConfig())

	reconciler := overlay.NewReconciler(grid, overlay.ReconcilerConfig{
		LocalUserID:   opts.LocalUserID,
		DebounceDelay: cfg.Overlay.DebounceDelay(),
		TrailingBias:  cfg.Overlay.TrailingBias,
	}, logger)

	renderer := overlay.NewRenderer(rendererConfig(cfg.Overlay))

	a := &App{
		opts:       opts,
		cfg:        cfg,
		logger:     logger,
		feed:       feed,
		grid:       grid,
		reconciler: reconciler,
		renderer:   renderer,
	}

	feed.Subscribe(reconciler.CursorsChanged)
	return a, nil
}

// rendererConfig derives descriptor geometry from the overlay settings.
func rendererConfig(oc config.OverlayConfig) overlay.RendererConfig {
	rc := overlay.DefaultRendererConfig()
	rc.Diagnostic = oc.Diagnostic
	if oc.FontSize > 0 {
		rc.CharWidth = 0.6 * oc.FontSize
		rc.LineHeight = 1.2 * oc.FontSize
	}
	if oc.LineHeight > 0 {
		rc.LineHeight = oc.LineHeight
	}
	return rc
}

// Start connects the presence transport and the config watcher. Both are
// optional: without a feed URL the app runs on local publishes only, and
// without a config path there is nothing to watch.
func (a *App) Start() error {
	if a.cfg.Feed.URL != "" {
		client, err := presence.DialFeed(presence.WSConfig{URL: a.cfg.Feed.URL}, a.feed, a.logger)
		if err != nil {
			return err
		}
		a.client = client
		a.logger.Infof("presence feed connected: %s", a.cfg.Feed.URL)
	}

	if a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, a.applyConfig, a.logger)
		if err != nil {
			a.logger.Warnf("config watcher unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}
	return nil
}

// Shutdown stops the transport, watcher, and any pending reconciliation.
func (a *App) Shutdown() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.Warnf("closing presence feed: %v", err)
		}
		a.client = nil
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warnf("closing config watcher: %v", err)
		}
		a.watcher = nil
	}
	a.reconciler.Stop()
}

// applyConfig applies a live-reloaded configuration. Runs on the watcher
// goroutine, so it only touches components that synchronize internally;
// a.cfg stays as loaded at construction. Settings fixed at construction
// (debounce delay, feed endpoint) take effect on restart.
func (a *App) applyConfig(cfg config.Config) {
	a.logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	a.renderer.SetDiagnostic(cfg.Overlay.Diagnostic)
	a.logger.Debugf("applied reloaded configuration")
}

// SetDocument replaces the document under measurement and reconciles
// against it.
func (a *App) SetDocument(root *document.Node) {
	a.grid.SetRoot(root)
	a.reconciler.ContentMutated()
}

// SetMetrics updates the measured container geometry, e.g. on resize.
func (a *App) SetMetrics(m layout.Metrics) {
	a.grid.SetMetrics(m)
	a.reconciler.ContentMutated()
}

// SetCellSize changes the measurement cell size and rescales descriptor
// geometry to match, keeping positions and descriptor extents in the same
// units. Terminal backends use 1x1 cells so descriptors map to rows and
// columns.
func (a *App) SetCellSize(width, height float64) {
	a.grid.SetCellSize(width, height)
	a.renderer.SetCellGeometry(width, height)
	a.reconciler.ContentMutated()
}

// ContentMutated forwards the editing core's content-change signal.
func (a *App) ContentMutated() {
	a.reconciler.ContentMutated()
}

// Feed returns the presence feed for local publishes.
func (a *App) Feed() *presence.Feed {
	return a.feed
}

// Grid returns the measurement provider.
func (a *App) Grid() *layout.Grid {
	return a.grid
}

// Send publishes the local user's cursor to the collab server, when
// connected.
func (a *App) Send(sample presence.CursorSample) error {
	if a.client == nil {
		return nil
	}
	sample.UserID = a.opts.LocalUserID
	sample.Username = a.opts.Username
	return a.client.Send(sample)
}

// Flush forces any pending debounced reconciliation to run now.
func (a *App) Flush() {
	a.reconciler.Flush()
}

// Descriptors renders the current overlay state.
func (a *App) Descriptors() []overlay.RenderDescriptor {
	return a.renderer.Render(a.reconciler.Snapshot())
}
