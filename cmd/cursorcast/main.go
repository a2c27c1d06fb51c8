// Package main is the cursorcast demo: it renders a shared document on the
// terminal with live remote-cursor overlays, fed either by a collab server
// or by simulated collaborators.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cursorcast/internal/app"
	"github.com/dshills/cursorcast/internal/document"
	"github.com/dshills/cursorcast/internal/layout"
	"github.com/dshills/cursorcast/internal/overlay"
	"github.com/dshills/cursorcast/internal/presence"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const sampleText = "CursorCast renders live collaborator cursors over a shared " +
	"document. Each remote caret carries a name badge in a color derived " +
	"from the collaborator's identity, and selections are highlighted at " +
	"the caret's line.\n\nMove around, or just watch the simulated " +
	"collaborators drift through this text."

func main() {
	os.Exit(run())
}

func run() int {
	opts, simulate := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	// Terminal cells are the measurement unit; descriptor geometry
	// rescales with the cell size.
	cols, rows := screen.Size()
	application.SetCellSize(1, 1)
	application.SetMetrics(layout.Metrics{Width: float64(cols), Height: float64(rows), FontSize: 1})
	application.SetDocument(document.NewElement("doc", document.NewText(sampleText)))
	application.Flush()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(400 * time.Millisecond)
	defer ticker.Stop()

	sim := newSimulator(application.Feed())
	total := document.NewText(sampleText).Length()

	for {
		select {
		case <-signals:
			return 0
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows = screen.Size()
				application.SetMetrics(layout.Metrics{
					Width:    float64(cols),
					Height:   float64(rows),
					FontSize: 1,
				})
				application.Flush()
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return 0
				}
			}
		case <-ticker.C:
			if simulate {
				sim.step(total)
			}
		}

		draw(screen, application, cols)
	}
}

// draw paints the document and the current overlay descriptors.
func draw(screen tcell.Screen, application *app.App, cols int) {
	screen.Clear()

	// Document text, wrapped at the container width like the grid.
	row, col := 0, 0
	for _, r := range sampleText {
		if r == '\n' {
			row, col = row+1, 0
			continue
		}
		if col >= cols {
			row, col = row+1, 0
		}
		screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}

	for _, desc := range application.Descriptors() {
		drawDescriptor(screen, desc)
	}

	screen.Show()
}

func drawDescriptor(screen tcell.Screen, desc overlay.RenderDescriptor) {
	r, g, b := desc.Color.RGB255()
	color := tcell.NewRGBColor(int32(r), int32(g), int32(b))

	if sel := desc.Selection; sel != nil {
		style := tcell.StyleDefault.Background(color).Dim(true)
		y := int(sel.Y)
		for x := int(sel.X); x < int(sel.X+sel.Width); x++ {
			main, _, _, _ := screen.GetContent(x, y)
			screen.SetContent(x, y, main, nil, style)
		}
	}

	// Caret cell.
	caretStyle := tcell.StyleDefault.Background(color)
	cx, cy := int(desc.Caret.X), int(desc.Caret.Y)
	main, _, _, _ := screen.GetContent(cx, cy)
	screen.SetContent(cx, cy, main, nil, caretStyle)

	// Name badge above the caret.
	badge := desc.Username
	if desc.Label != "" {
		badge = desc.Label
	}
	by := int(desc.Badge.Y)
	if by < 0 {
		by = 0
	}
	badgeStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(color)
	for i, r := range badge {
		screen.SetContent(int(desc.Badge.X)+i, by, r, nil, badgeStyle)
	}
}

// simulator drifts fake collaborators through the document.
type simulator struct {
	feed    *presence.Feed
	offsets map[string]int
}

func newSimulator(feed *presence.Feed) *simulator {
	return &simulator{
		feed:    feed,
		offsets: map[string]int{"sim-ada": 0, "sim-grace": 40},
	}
}

func (s *simulator) step(total int) {
	names := map[string]string{"sim-ada": "Ada", "sim-grace": "Grace"}
	strides := map[string]int{"sim-ada": 3, "sim-grace": 5}

	for id, off := range s.offsets {
		off = (off + strides[id]) % (total + 1)
		s.offsets[id] = off

		sample := presence.CursorSample{
			UserID:   id,
			Username: names[id],
			Offset:   off,
		}
		// Grace drags a selection behind her caret.
		if id == "sim-grace" && off > 8 {
			sample.SelectionStart = off - 8
			sample.SelectionEnd = off
		} else {
			sample.SelectionStart = off
			sample.SelectionEnd = off
		}
		s.feed.Publish(sample)
	}
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var simulate bool
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.FeedURL, "url", "", "Presence feed websocket URL")
	flag.StringVar(&opts.LocalUserID, "user", "local", "Local user ID")
	flag.StringVar(&opts.Username, "name", "You", "Local display name")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&simulate, "simulate", true, "Simulate remote collaborators when no feed URL is set")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "CursorCast - live collaborator cursor overlays\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cursorcast [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("CursorCast %s\nCommit: %s\n", version, commit)
		os.Exit(0)
	}

	if opts.FeedURL != "" {
		simulate = false
	}
	return opts, simulate
}
