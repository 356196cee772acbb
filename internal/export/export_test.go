package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/videograph/walker/internal/vertex"
)

func sampleVertices() []*vertex.Vertex {
	return []*vertex.Vertex{
		{ID: "a", Title: "Video A", Channel: "Chan", Duration: 120, ViewCount: 42, RelatedIDs: []string{"b", "c"}, DiscoveredAt: time.Unix(0, 0).UTC()},
		{ID: "b", Title: "Video B", Depth: 1, ParentID: "a", DiscoveredAt: time.Unix(0, 0).UTC()},
	}
}

func TestExportFlatJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, New().Export(path, FormatFlatJSON, sampleVertices()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []vertex.Vertex
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 2)
}

func TestExportJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, New().Export(path, FormatJSONL, sampleVertices()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitNonEmptyLines(string(data))
	assert.Len(t, lines, 2)
}

func TestExportCSV_HasHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, New().Export(path, FormatCSV, sampleVertices()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitNonEmptyLines(string(data))
	assert.Len(t, lines, 3) // header + 2 rows
	assert.Contains(t, lines[0], "video_id")
}

func TestExportXLSX_WritesSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, New().Export(path, FormatXLSX, sampleVertices()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Vertices")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportAuto_InfersFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, New().ExportAuto(path, sampleVertices()))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestExportAuto_UnknownExtensionErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.weird")
	err := New().ExportAuto(path, sampleVertices())
	assert.Error(t, err)
}

func splitNonEmptyLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if line := s[start:i]; len(line) > 0 {
				out = append(out, line)
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
