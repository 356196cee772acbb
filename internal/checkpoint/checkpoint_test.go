package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videograph/walker/internal/vertex"
)

func TestSaveLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.json")

	data := &Data{
		Visited: map[string]int{"a": 0, "b": 1},
		Discovered: map[string]*vertex.Vertex{
			"a": {ID: "a", Title: "Video A", RelatedIDs: []string{"b"}},
		},
		Stats: StatsSnapshot{VideosDiscovered: 1, VideosProcessed: 1},
	}

	require.NoError(t, Save(path, data))
	assert.True(t, Exists(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, data.Visited, loaded.Visited)
	assert.Equal(t, "Video A", loaded.Discovered["a"].Title)
	assert.Equal(t, int64(1), loaded.Stats.VideosDiscovered)
	assert.False(t, loaded.Timestamp.IsZero())
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.json")
	require.NoError(t, Save(path, &Data{}))

	entries, err := filepathGlob(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the final checkpoint file should remain")
}

func filepathGlob(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*"))
}

func TestLoad_MissingFileReturnsErrReadFailure(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	var rf *ErrReadFailure
	assert.ErrorAs(t, err, &rf)
}
