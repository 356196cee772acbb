// Package components provides the dashboard's reusable widgets.
package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	walkerTheme "github.com/videograph/walker/internal/ui/theme"
)

// VertexRow is one row of the recently-discovered list: a flattened
// projection of vertex.Vertex, kept as strings so the list widget never
// needs to know about the domain type.
type VertexRow struct {
	ID      string
	Title   string
	Channel string
	Depth   string
}

// VertexList shows the most recently discovered videos, newest first. No
// column sorting or text filtering: a live feed doesn't need them. Rows
// render through a widget.List for virtualized scrolling.
type VertexList struct {
	widget.BaseWidget

	rows []VertexRow
	body *widget.List

	OnRowSelected func(row VertexRow)
}

// NewVertexList creates an empty list.
func NewVertexList() *VertexList {
	vl := &VertexList{}
	vl.ExtendBaseWidget(vl)
	return vl
}

// SetRows replaces the displayed rows and refreshes the widget.
func (vl *VertexList) SetRows(rows []VertexRow) {
	vl.rows = rows
	if vl.body != nil {
		vl.body.Refresh()
	}
}

func (vl *VertexList) CreateRenderer() fyne.WidgetRenderer {
	headerBg := canvas.NewRectangle(walkerTheme.ColorTableHeader)
	header := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("ID", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Title", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Channel", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Depth", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	list := widget.NewList(
		func() int { return len(vl.rows) },
		func() fyne.CanvasObject {
			return container.NewGridWithColumns(4,
				widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(vl.rows) {
				return
			}
			row := vl.rows[id]
			cont := obj.(*fyne.Container)
			cont.Objects[0].(*widget.Label).SetText(row.ID)
			cont.Objects[1].(*widget.Label).SetText(row.Title)
			cont.Objects[2].(*widget.Label).SetText(row.Channel)
			cont.Objects[3].(*widget.Label).SetText(row.Depth)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if vl.OnRowSelected != nil && id < len(vl.rows) {
			vl.OnRowSelected(vl.rows[id])
		}
	}
	vl.body = list

	content := container.NewBorder(
		container.NewStack(headerBg, header),
		nil, nil, nil,
		list,
	)
	return widget.NewSimpleRenderer(content)
}

// StatsBar shows live crawl counters.
type StatsBar struct {
	widget.BaseWidget

	discoveredLabel *widget.Label
	visitedLabel    *widget.Label
	errorsLabel     *widget.Label
	rateLabel       *widget.Label
	elapsedLabel    *widget.Label
}

// NewStatsBar creates a new stats bar.
func NewStatsBar() *StatsBar {
	sb := &StatsBar{
		discoveredLabel: widget.NewLabel("Discovered: 0"),
		visitedLabel:    widget.NewLabel("Visited: 0"),
		errorsLabel:     widget.NewLabel("Errors: 0"),
		rateLabel:       widget.NewLabel("Rate: 0.0/s"),
		elapsedLabel:    widget.NewLabel("Elapsed: 0s"),
	}
	sb.ExtendBaseWidget(sb)
	return sb
}

// Update refreshes the displayed counters.
func (sb *StatsBar) Update(discovered, visited, errors int, rate float64, elapsed string) {
	sb.discoveredLabel.SetText(fmt.Sprintf("Discovered: %d", discovered))
	sb.visitedLabel.SetText(fmt.Sprintf("Visited: %d", visited))
	sb.errorsLabel.SetText(fmt.Sprintf("Errors: %d", errors))
	sb.rateLabel.SetText(fmt.Sprintf("Rate: %.1f/s", rate))
	sb.elapsedLabel.SetText(fmt.Sprintf("Elapsed: %s", elapsed))
}

func (sb *StatsBar) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewHBox(
		sb.discoveredLabel,
		widget.NewSeparator(),
		sb.visitedLabel,
		widget.NewSeparator(),
		sb.errorsLabel,
		widget.NewSeparator(),
		sb.rateLabel,
		widget.NewSeparator(),
		sb.elapsedLabel,
	)
	return widget.NewSimpleRenderer(content)
}
