// Package ui provides a live dashboard for a running walk: discovery
// counters and a feed of recently discovered vertices. Adapted from the
// teacher's fyne-based crawl monitor, retargeted from a multi-tab URL
// browser at a single scrolling feed, since a video graph walk has one
// kind of record instead of a dozen report types.
package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/videograph/walker/internal/engine"
	"github.com/videograph/walker/internal/ui/components"
	walkerTheme "github.com/videograph/walker/internal/ui/theme"
	"github.com/videograph/walker/internal/vertex"
)

// Dashboard is a read-only fyne window onto a running Engine: it polls
// Engine.Stats and Engine.Store on a timer and refreshes its widgets. It
// never drives the engine itself (start/resume stay on the CLI); the one
// exception is Stop, surfaced as a button since it is the one control a
// human watching a long walk actually wants mid-run.
type Dashboard struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	statsBar   *components.StatsBar
	vertexList *components.VertexList
	stopButton *widget.Button

	eng *engine.Engine

	// OnStop is invoked when the user clicks Stop; the caller owns what
	// that means (engine.Stop plus a final checkpoint/export, typically).
	OnStop func()
}

// NewDashboard creates a dashboard window bound to eng. Call RunPolling to
// start the fyne event loop; it blocks until the window is closed.
func NewDashboard(eng *engine.Engine) *Dashboard {
	d := &Dashboard{eng: eng}

	d.fyneApp = app.New()
	d.fyneApp.Settings().SetTheme(&walkerTheme.DashboardTheme{})

	d.mainWindow = d.fyneApp.NewWindow("walker")
	d.mainWindow.Resize(fyne.NewSize(1000, 700))
	d.mainWindow.CenterOnScreen()

	d.buildUI()
	return d
}

func (d *Dashboard) buildUI() {
	d.statsBar = components.NewStatsBar()
	statusBar := container.NewStack(
		canvas.NewRectangle(walkerTheme.ColorSidebar),
		container.NewPadded(d.statsBar),
	)

	d.stopButton = widget.NewButton("Stop", func() {
		if d.OnStop != nil {
			d.OnStop()
		}
		d.stopButton.Disable()
	})
	d.stopButton.Importance = widget.DangerImportance

	toolbar := container.NewStack(
		canvas.NewRectangle(walkerTheme.ColorSidebar),
		container.NewPadded(container.NewBorder(nil, nil, widget.NewLabel("Discovered videos"), d.stopButton)),
	)

	d.vertexList = components.NewVertexList()

	content := container.NewBorder(toolbar, statusBar, nil, nil, d.vertexList)
	d.mainWindow.SetContent(content)
}

// Refresh pulls a fresh stats snapshot and vertex list from the engine
// and updates the widgets. Safe to call from any goroutine; fyne
// marshals widget updates onto its own render thread internally.
func (d *Dashboard) Refresh() {
	snap := d.eng.Stats().Snapshot()
	d.statsBar.Update(
		int(snap.VideosDiscovered),
		d.eng.Store().VisitedCount(),
		int(snap.Errors),
		snap.VideosPerSecond,
		time.Duration(snap.ElapsedSeconds*float64(time.Second)).Round(time.Second).String(),
	)

	vertices := d.eng.Store().All()
	sort.Slice(vertices, func(i, j int) bool {
		return vertices[i].DiscoveredAt.After(vertices[j].DiscoveredAt)
	})
	if len(vertices) > 200 {
		vertices = vertices[:200]
	}
	d.vertexList.SetRows(toRows(vertices))
}

// RunPolling starts a background ticker calling Refresh every interval,
// then runs the fyne event loop on the calling goroutine until the window
// is closed. interval <= 0 defaults to one second.
func (d *Dashboard) RunPolling(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	d.mainWindow.SetOnClosed(func() { close(done) })

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.Refresh()
			case <-done:
				return
			}
		}
	}()

	d.mainWindow.ShowAndRun()
}

// Window returns the underlying fyne window, e.g. for tests that need to
// drive it without starting the full event loop.
func (d *Dashboard) Window() fyne.Window { return d.mainWindow }

func toRows(vertices []*vertex.Vertex) []components.VertexRow {
	rows := make([]components.VertexRow, len(vertices))
	for i, v := range vertices {
		rows[i] = components.VertexRow{
			ID:      v.ID,
			Title:   v.Title,
			Channel: v.Channel,
			Depth:   depthLabel(v.Depth),
		}
	}
	return rows
}

func depthLabel(depth int) string {
	if depth == 0 {
		return "seed"
	}
	return "+" + strconv.Itoa(depth)
}
