package expander

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/videograph/walker/internal/urlutil"
	"github.com/videograph/walker/internal/vertex"
)

// ytInitialDataPatterns mirrors the two script-tag shapes YouTube has used
// to embed the page's initial JSON payload.
var ytInitialDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`var\s+ytInitialData\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`window\["ytInitialData"\]\s*=\s*(\{.+?\});`),
}

// PageScrapeExpander resolves a video by fetching its watch page, locating
// the embedded ytInitialData JSON, and walking it for related video ids;
// if that JSON can't be found or parsed, it falls back to a raw regex scan
// of the page text for "videoId" tokens. Metadata (title/channel/duration/
// view count) comes from a separately injected MetadataResolver, keeping
// fetch/parse and external metadata lookup as separate concerns.
type PageScrapeExpander struct {
	client   *http.Client
	resolver MetadataResolver
	log      *zap.SugaredLogger
}

// NewPageScrapeExpander builds an expander with a connection-pooled HTTP
// client: generous idle connection reuse, bounded dial/TLS timeouts,
// compression left on.
func NewPageScrapeExpander(resolver MetadataResolver, log *zap.SugaredLogger) *PageScrapeExpander {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: false},
	}
	return &PageScrapeExpander{
		client:   &http.Client{Transport: transport, Timeout: 15 * time.Second},
		resolver: resolver,
		log:      log,
	}
}

// Expand fetches the watch page for id, extracts related ids, resolves
// metadata, and returns the assembled vertex.
func (e *PageScrapeExpander) Expand(ctx context.Context, id string) (*vertex.Vertex, Outcome, error) {
	pageText, err := e.fetchPage(ctx, id)
	if err != nil {
		if isPermanent(err) {
			return nil, OutcomePermanentFailure, &ExpansionError{Outcome: OutcomePermanentFailure, ID: id, Err: err}
		}
		return nil, OutcomeTransientFailure, &ExpansionError{Outcome: OutcomeTransientFailure, ID: id, Err: err}
	}

	related := e.extractRelated(pageText, id)

	outcome := OutcomeOK
	var meta *Metadata
	if e.resolver != nil {
		meta, err = e.resolver.Resolve(ctx, id)
		if err != nil {
			e.log.Debugw("metadata resolve failed, recording partial vertex", "id", id, "err", err)
			outcome = OutcomePartialMetadata
			meta = &Metadata{}
		}
	} else {
		meta = &Metadata{}
	}

	v := &vertex.Vertex{
		ID:         id,
		Title:      meta.Title,
		Channel:    meta.Channel,
		Duration:   meta.Duration,
		ViewCount:  meta.ViewCount,
		RelatedIDs: vertex.ClampRelatedIDs(related),
	}
	return v, outcome, nil
}

// fetchPage performs the HTTP GET for a watch page and returns its body.
func (e *PageScrapeExpander) fetchPage(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlutil.CanonicalURL(id), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return "", &permanentHTTPError{status: resp.StatusCode}
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// extractRelated implements the two-method extraction: parse embedded
// ytInitialData JSON first (locating its script tag via golang.org/x/net/
// html rather than scanning the whole document blindly), then fall back to
// a raw regex scan for "videoId" tokens.
func (e *PageScrapeExpander) extractRelated(pageText, selfID string) []string {
	for _, scriptText := range scriptTagContents(pageText) {
		for _, pattern := range ytInitialDataPatterns {
			m := pattern.FindStringSubmatch(scriptText)
			if m == nil {
				continue
			}
			var data interface{}
			if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
				continue
			}
			ids := extractVideoIDsFromData(data, selfID)
			if len(ids) > 0 {
				return ids
			}
		}
	}

	// Fallback: scan the raw page for videoId tokens.
	ids := urlutil.FindAllVideoIDs(pageText)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != selfID {
			out = append(out, id)
		}
	}
	return out
}

// scriptTagContents walks the DOM for <script> elements and returns their
// text content, so the JSON-boundary regexes only ever run against
// script bodies instead of the entire HTML document.
func scriptTagContents(pageText string) []string {
	doc, err := html.Parse(strings.NewReader(pageText))
	if err != nil {
		return []string{pageText}
	}

	var scripts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				scripts = append(scripts, n.FirstChild.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return scripts
}

// extractVideoIDsFromData recursively walks a decoded ytInitialData tree
// looking for "videoId" string values, dropping duplicates and the video
// the data was scraped from. Ids are returned in the order the walk meets
// them: array elements are visited in order, but the keys of each decoded
// object are visited in Go's map iteration order, so the result does not
// follow the order of appearance in the page and can differ between calls.
func extractVideoIDsFromData(data interface{}, selfID string) []string {
	seen := make(map[string]struct{})
	var out []string

	var walk func(interface{})
	walk = func(node interface{}) {
		switch v := node.(type) {
		case map[string]interface{}:
			for key, val := range v {
				if key == "videoId" {
					if id, ok := val.(string); ok && id != selfID {
						if _, dup := seen[id]; !dup {
							seen[id] = struct{}{}
							out = append(out, id)
						}
					}
				} else {
					walk(val)
				}
			}
		case []interface{}:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(data)
	return out
}

type permanentHTTPError struct{ status int }

func (e *permanentHTTPError) Error() string {
	return fmt.Sprintf("permanent http status %d", e.status)
}

func isPermanent(err error) bool {
	_, ok := err.(*permanentHTTPError)
	return ok
}
