// Package sink implements the best-effort media acquisition step that
// runs after a vertex is recorded. Acquisition failures here never fail
// the crawl — they are logged and counted, matching the "errors" stat
// rather than the crawl's own error-handling path.
package sink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/videograph/walker/internal/urlutil"
	"github.com/videograph/walker/internal/vertex"
)

// Outcome reports what a sink did with a vertex.
type Outcome struct {
	Acquired bool
	Bytes    int64
}

// Sink is the narrow contract the engine calls after recording a vertex.
// Real media download/transcode internals are out of scope; this
// interface exists so a real implementation can be swapped in without
// touching engine code.
type Sink interface {
	Acquire(ctx context.Context, v *vertex.Vertex) (Outcome, error)
}

// NoopSink never acquires anything; it is the default when downloads are
// disabled.
type NoopSink struct{}

func (NoopSink) Acquire(ctx context.Context, v *vertex.Vertex) (Outcome, error) {
	return Outcome{}, nil
}

// HTTPDownloadSink fetches a vertex's watch page and writes it to disk as
// a stand-in "acquisition" artifact; resolving the direct media URL
// requires a real extractor, which is out of scope, so this sink is
// scoped to what this system owns end-to-end.
type HTTPDownloadSink struct {
	dir      string
	client   *http.Client
	urlForID func(id string) string
}

// NewHTTPDownloadSink returns a sink that writes artifacts under dir,
// fetching each vertex's canonical watch-page URL.
func NewHTTPDownloadSink(dir string) *HTTPDownloadSink {
	return &HTTPDownloadSink{
		dir:      dir,
		client:   &http.Client{Timeout: 30 * time.Second},
		urlForID: urlutil.CanonicalURL,
	}
}

// Acquire fetches the watch page for v and writes it to <dir>/<id>.html,
// returning the byte count written.
func (s *HTTPDownloadSink) Acquire(ctx context.Context, v *vertex.Vertex) (Outcome, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Outcome{}, fmt.Errorf("mkdir sink dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.urlForID(v.ID), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	path := filepath.Join(s.dir, v.ID+".html")
	f, err := os.Create(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(resp.Body, 25*1024*1024))
	if err != nil {
		return Outcome{}, fmt.Errorf("write artifact: %w", err)
	}
	return Outcome{Acquired: true, Bytes: n}, nil
}

// UploadSink is the narrow remote-storage contract; its default
// implementation is a no-op, matching the system's non-goal of
// implementing remote upload internals.
type UploadSink interface {
	Upload(ctx context.Context, localPath string) error
}

// NoopUploadSink never uploads.
type NoopUploadSink struct{}

func (NoopUploadSink) Upload(ctx context.Context, localPath string) error { return nil }
