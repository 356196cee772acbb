// Package export writes discovered vertices out to disk, in flat JSON,
// JSONL, or tabular (CSV/XLSX) form.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/videograph/walker/internal/vertex"
)

// Format identifies the output file shape.
type Format string

const (
	FormatFlatJSON Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
)

// formatsByExtension maps a file extension (lowercase, with leading dot)
// to the Format ExportAuto should use.
var formatsByExtension = map[string]Format{
	".json":  FormatFlatJSON,
	".jsonl": FormatJSONL,
	".csv":   FormatCSV,
	".xlsx":  FormatXLSX,
}

// Exporter writes a slice of vertices to one of the supported formats.
type Exporter struct{}

// New returns an Exporter.
func New() *Exporter { return &Exporter{} }

// Export writes vertices to path in the given format.
func (e *Exporter) Export(path string, format Format, vertices []*vertex.Vertex) error {
	switch format {
	case FormatFlatJSON:
		return e.exportFlatJSON(path, vertices)
	case FormatJSONL:
		return e.exportJSONL(path, vertices)
	case FormatCSV:
		return e.exportCSV(path, vertices)
	case FormatXLSX:
		return e.exportXLSX(path, vertices)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportAuto infers the format from path's extension.
func (e *Exporter) ExportAuto(path string, vertices []*vertex.Vertex) error {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatsByExtension[ext]
	if !ok {
		return fmt.Errorf("cannot infer export format from extension %q", ext)
	}
	return e.Export(path, format, vertices)
}

func (e *Exporter) exportFlatJSON(path string, vertices []*vertex.Vertex) error {
	payload, err := json.MarshalIndent(vertices, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vertices: %w", err)
	}
	return os.WriteFile(path, payload, 0o644)
}

func (e *Exporter) exportJSONL(path string, vertices []*vertex.Vertex) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	enc := json.NewEncoder(w)
	for _, v := range vertices {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode vertex %s: %w", v.ID, err)
		}
	}
	return nil
}

var columns = []string{
	"video_id", "url", "title", "channel", "duration_seconds", "view_count",
	"depth", "parent_id", "discovered_at", "related_ids",
}

func rowFor(v *vertex.Vertex) []string {
	return []string{
		v.ID,
		v.URL,
		v.Title,
		v.Channel,
		strconv.Itoa(v.Duration),
		strconv.FormatInt(v.ViewCount, 10),
		strconv.Itoa(v.Depth),
		v.ParentID,
		v.DiscoveredAt.Format("2006-01-02T15:04:05Z07:00"),
		strings.Join(v.RelatedIDs, "|"),
	}
}

func (e *Exporter) exportCSV(path string, vertices []*vertex.Vertex) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	// UTF-8 BOM for spreadsheet-application compatibility.
	f.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, v := range vertices {
		if err := w.Write(rowFor(v)); err != nil {
			return fmt.Errorf("write row %s: %w", v.ID, err)
		}
	}
	return nil
}

func (e *Exporter) exportXLSX(path string, vertices []*vertex.Vertex) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Vertices"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
	for r, v := range vertices {
		row := rowFor(v)
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
