package sink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videograph/walker/internal/vertex"
)

func TestNoopSink_NeverAcquires(t *testing.T) {
	s := NoopSink{}
	out, err := s.Acquire(context.Background(), &vertex.Vertex{ID: "x"})
	require.NoError(t, err)
	assert.False(t, out.Acquired)
}

func TestHTTPDownloadSink_WritesArtifact(t *testing.T) {
	const body = "<html>fake watch page</html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewHTTPDownloadSink(dir)
	s.urlForID = func(id string) string { return srv.URL }

	out, err := s.Acquire(context.Background(), &vertex.Vertex{ID: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.True(t, out.Acquired)
	assert.Equal(t, int64(len(body)), out.Bytes)

	written, err := os.ReadFile(filepath.Join(dir, "dQw4w9WgXcQ.html"))
	require.NoError(t, err)
	assert.Equal(t, body, string(written))
}

func TestHTTPDownloadSink_PropagatesFetchError(t *testing.T) {
	dir := t.TempDir()
	s := NewHTTPDownloadSink(dir)
	s.urlForID = func(id string) string { return "http://127.0.0.1:0" }

	_, err := s.Acquire(context.Background(), &vertex.Vertex{ID: "x"})
	assert.Error(t, err)
}

func TestNoopUploadSink_NeverErrors(t *testing.T) {
	u := NoopUploadSink{}
	assert.NoError(t, u.Upload(context.Background(), "/tmp/whatever"))
}
