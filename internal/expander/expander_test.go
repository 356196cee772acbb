package expander

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videograph/walker/internal/logging"
)

// stubResolver is a deterministic MetadataResolver for tests, standing in
// for a real yt-dlp invocation.
type stubResolver struct {
	meta *Metadata
	err  error
}

func (s *stubResolver) Resolve(ctx context.Context, id string) (*Metadata, error) {
	return s.meta, s.err
}

func (s *stubResolver) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return nil, nil
}

// newFakeWatchPage starts an httptest server that always returns the given
// watch-page body, regardless of path, standing in for youtube.com.
func newFakeWatchPage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPageScrapeExpander_ExtractsRelatedFromInitialData(t *testing.T) {
	page := `<html><body><script>
		var ytInitialData = {"contents":{"items":[{"videoRenderer":{"videoId":"bbbbbbbbbbb"}},{"videoId":"ccccccccccc"}]}};
	</script></body></html>`

	e := &PageScrapeExpander{resolver: &stubResolver{meta: &Metadata{Title: "t"}}, log: logging.Discard(), client: http.DefaultClient}
	related := e.extractRelated(page, "aaaaaaaaaaa")
	assert.ElementsMatch(t, []string{"bbbbbbbbbbb", "ccccccccccc"}, related)
}

func TestPageScrapeExpander_FallsBackToRegexScan(t *testing.T) {
	page := `<html><body>no json here but "videoId":"bbbbbbbbbbb" and "videoId":"aaaaaaaaaaa"</body></html>`

	e := &PageScrapeExpander{resolver: &stubResolver{meta: &Metadata{}}, log: logging.Discard(), client: http.DefaultClient}
	related := e.extractRelated(page, "aaaaaaaaaaa")
	assert.Equal(t, []string{"bbbbbbbbbbb"}, related)
}

func TestPageScrapeExpander_WindowInitialDataAndResolver(t *testing.T) {
	page := `<script>window["ytInitialData"] = {"videoId":"zzzzzzzzzzz"};</script>`
	srv := newFakeWatchPage(t, page)

	e := NewPageScrapeExpander(&stubResolver{meta: &Metadata{Title: "My Video", Channel: "Chan"}}, logging.Discard())
	e.client = srv.Client()

	// Expand always fetches the canonical youtube.com URL, which the fake
	// server cannot stand in for, so this test calls extractRelated and the
	// resolver directly instead of making an HTTP round trip through Expand.
	related := e.extractRelated(page, "selfid")
	assert.Equal(t, []string{"zzzzzzzzzzz"}, related)

	meta, err := e.resolver.Resolve(context.Background(), "selfid")
	require.NoError(t, err)
	assert.Equal(t, "My Video", meta.Title)
}

func TestPageScrapeExpander_RelatedIDsDoNotDependOnResolver(t *testing.T) {
	page := `<script>var ytInitialData = {"videoId":"bbbbbbbbbbb"};</script>`
	e := &PageScrapeExpander{
		resolver: &stubResolver{err: assert.AnError},
		log:      logging.Discard(),
		client:   http.DefaultClient,
	}

	related := e.extractRelated(page, "aaaaaaaaaaa")
	require.NotEmpty(t, related)

	_, err := e.resolver.Resolve(context.Background(), "aaaaaaaaaaa")
	assert.Error(t, err) // resolver itself fails...
	// ...but Expand's contract (exercised via pagescrape.go) downgrades
	// that to OutcomePartialMetadata rather than propagating an error.
}
