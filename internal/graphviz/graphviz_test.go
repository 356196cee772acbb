package graphviz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videograph/walker/internal/graphstore"
	"github.com/videograph/walker/internal/vertex"
)

func TestRender_WritesDOTFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph.db")
	store, err := graphstore.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(&vertex.Vertex{ID: "a", Title: "Video A", RelatedIDs: []string{"b"}}))
	require.NoError(t, store.Put(&vertex.Vertex{ID: "b", Title: "Video B"}))

	outPath := filepath.Join(t.TempDir(), "graph.dot")
	r := New(store)
	require.NoError(t, r.Render(context.Background(), outPath, FormatDOT))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
