package expander

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/videograph/walker/internal/urlutil"
)

// Metadata is the subset of a video's ground-truth metadata the walker
// records, resolved independently of the related-ids scrape.
type Metadata struct {
	Title     string
	Channel   string
	Duration  int
	ViewCount int64
}

// MetadataResolver resolves a video id (or a search query, for seed
// bootstrapping) to metadata / candidate ids. It is an interface so tests
// never have to shell out to a real binary or hit the network.
type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) (*Metadata, error)
	// Search resolves a free-text query to a slice of video ids, used by
	// SeedSource.AddRandomSeeds.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// YtDlpResolver shells out to the yt-dlp CLI (`yt-dlp -j <url>`) to
// resolve ground-truth metadata — the Go ecosystem has no maintained
// native port of yt-dlp's extractor matrix, so deferring to the real tool
// is the idiomatic integration point, the same way RenderExpander defers
// to a real browser for JS execution rather than reimplementing one.
type YtDlpResolver struct {
	BinaryPath string
	Timeout    time.Duration
}

// NewYtDlpResolver returns a resolver that invokes the yt-dlp binary on
// PATH with a default 20s per-call timeout.
func NewYtDlpResolver() *YtDlpResolver {
	return &YtDlpResolver{BinaryPath: "yt-dlp", Timeout: 20 * time.Second}
}

type ytDlpOutput struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Uploader  string `json:"uploader"`
	Duration  float64 `json:"duration"`
	ViewCount int64   `json:"view_count"`
}

// Resolve runs `yt-dlp -j --skip-download <watch-url>` and parses the JSON
// it prints to stdout.
func (r *YtDlpResolver) Resolve(ctx context.Context, videoID string) (*Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.BinaryPath, "-j", "--skip-download", urlutil.CanonicalURL(videoID))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp: %w: %s", err, stderr.String())
	}

	var out ytDlpOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("yt-dlp: parse output: %w", err)
	}

	channel := out.Channel
	if channel == "" {
		channel = out.Uploader
	}

	return &Metadata{
		Title:     out.Title,
		Channel:   channel,
		Duration:  int(out.Duration),
		ViewCount: out.ViewCount,
	}, nil
}

// Search runs `yt-dlp -j "ytsearch<limit>:<query>"`, which yt-dlp
// interprets as "search and return up to limit results" — the mechanism
// AddRandomSeeds uses to bootstrap a run with no explicit seed URLs.
func (r *YtDlpResolver) Search(ctx context.Context, query string, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	searchSpec := fmt.Sprintf("ytsearch%d:%s", limit, query)
	cmd := exec.CommandContext(ctx, r.BinaryPath, "-j", "--skip-download", "--flat-playlist", searchSpec)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp search: %w: %s", err, stderr.String())
	}

	// yt-dlp with -j prints one JSON object per line for playlist results.
	var ids []string
	dec := json.NewDecoder(bytes.NewReader(stdout.Bytes()))
	for dec.More() {
		var entry struct {
			ID string `json:"id"`
		}
		if err := dec.Decode(&entry); err != nil {
			break
		}
		if entry.ID != "" {
			ids = append(ids, entry.ID)
		}
	}
	return ids, nil
}
