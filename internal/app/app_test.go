package app

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/cursorcast/internal/document"
	"github.com/dshills/cursorcast/internal/layout"
	"github.com/dshills/cursorcast/internal/presence"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cursorcast.toml")
	content := "log_level = \"error\"\n\n[overlay]\ndebounce_ms = 20\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{
		ConfigPath:  path,
		LocalUserID: "u1",
		Username:    "Me",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestAppFeedDrivesDescriptors(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown()

	a.SetDocument(document.NewElement("doc", document.NewText("abcdefghij")))
	a.Flush()

	a.Feed().Publish(presence.CursorSample{UserID: "u2", Username: "Bob", Offset: 5})
	a.Feed().Publish(presence.CursorSample{UserID: "u1", Username: "Me", Offset: 3})

	descs := a.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("Descriptors() = %d entries, want 1 (local user excluded)", len(descs))
	}
	if descs[0].UserID != "u2" || descs[0].Username != "Bob" {
		t.Errorf("descriptor identity = (%q, %q), want (u2, Bob)",
			descs[0].UserID, descs[0].Username)
	}
}

func TestAppContentMutationReconciles(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown()

	a.SetDocument(document.NewElement("doc", document.NewText("abcdefghij")))
	a.Flush()
	a.Feed().Publish(presence.CursorSample{UserID: "u2", Offset: 9})

	// Shrink the document; the overlay must follow after the debounce.
	a.SetDocument(document.NewElement("doc", document.NewText("ab")))
	time.Sleep(100 * time.Millisecond)

	descs := a.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("Descriptors() = %d entries, want 1", len(descs))
	}
	// Offset 9 clamps to the end of "ab" on the default grid: column 2.
	want := 2 * 9.6
	if math.Abs(descs[0].Caret.X-want) > 1e-9 {
		t.Errorf("caret X = %v, want %v after mutation", descs[0].Caret.X, want)
	}
}

func TestAppCellSizeRescalesDescriptors(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown()

	// Terminal-style setup: 1x1 cells on an 80x24 surface, so every
	// descriptor extent must come out in rows and columns too.
	a.SetCellSize(1, 1)
	a.SetMetrics(layout.Metrics{Width: 80, Height: 24, FontSize: 1})
	a.SetDocument(document.NewElement("doc", document.NewText("abcdefghij")))
	a.Flush()

	a.Feed().Publish(presence.CursorSample{
		UserID: "u2", Username: "Bob",
		Offset: 5, SelectionStart: 2, SelectionEnd: 6,
	})

	descs := a.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("Descriptors() = %d entries, want 1", len(descs))
	}
	d := descs[0]

	// Column 5 plus the one-cell trailing bias.
	if d.Caret.X != 6 || d.Caret.Y != 0 {
		t.Errorf("caret = (%v, %v), want (6, 0)", d.Caret.X, d.Caret.Y)
	}
	if d.Caret.Height != 1 {
		t.Errorf("caret height = %v, want 1 cell", d.Caret.Height)
	}
	if d.Badge.Y != d.Caret.Y-1 || d.Badge.Height != 1 {
		t.Errorf("badge = (Y %v, height %v), want one row above the caret",
			d.Badge.Y, d.Badge.Height)
	}

	if d.Selection == nil {
		t.Fatal("selection rectangle missing")
	}
	if d.Selection.Width != 4 {
		t.Errorf("selection width = %v cells, want 4 (offsets 2..6)", d.Selection.Width)
	}
	if d.Selection.X != d.Caret.X-3 {
		t.Errorf("selection X = %v, want %v (3 cells left of the caret)",
			d.Selection.X, d.Caret.X-3)
	}
	if d.Selection.Height != 1 {
		t.Errorf("selection height = %v, want 1 cell", d.Selection.Height)
	}
}

func TestAppApplyConfigTogglesDiagnostic(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown()

	a.SetDocument(document.NewElement("doc", document.NewText("abcdefghij")))
	a.Flush()
	a.Feed().Publish(presence.CursorSample{UserID: "u2", Username: "Bob", Offset: 5})

	cfg := a.cfg
	cfg.Overlay.Diagnostic = true
	a.applyConfig(cfg)

	descs := a.Descriptors()
	if len(descs) != 1 || descs[0].Label == "" {
		t.Error("diagnostic labels missing after config reload")
	}
	// The stored config is read-only after construction; reloads only
	// touch components that synchronize internally.
	if a.cfg.Overlay.Diagnostic {
		t.Error("applyConfig mutated the stored config")
	}
}

func TestAppStartWithoutTransport(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown()

	// No feed URL configured: Start must succeed without a server.
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Send(presence.CursorSample{Offset: 1}); err != nil {
		t.Errorf("Send without transport = %v, want nil", err)
	}
}

func TestAppDefaultsWithoutConfigFile(t *testing.T) {
	a, err := New(Options{LocalUserID: "u1"})
	if err != nil {
		t.Fatalf("New without config: %v", err)
	}
	defer a.Shutdown()

	if a.cfg.Overlay.DebounceMS != 150 {
		t.Errorf("DebounceMS = %d, want default 150", a.cfg.Overlay.DebounceMS)
	}
}
