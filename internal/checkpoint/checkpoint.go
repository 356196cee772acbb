// Package checkpoint persists and restores crawl progress. Where the
// teacher serialized with gob+gzip into a directory of timestamped
// snapshots, this package writes one plain JSON file per the documented
// schema, written atomically via a temp-file-then-rename so a crash
// mid-write never leaves a corrupt checkpoint behind.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/videograph/walker/internal/vertex"
)

// StatsSnapshot is the subset of engine counters worth persisting across a
// restart; it is intentionally a plain value type so this package never
// needs to import internal/engine.
type StatsSnapshot struct {
	VideosDiscovered int64 `json:"videos_discovered"`
	VideosProcessed  int64 `json:"videos_processed"`
	VideosDownloaded int64 `json:"videos_downloaded"`
	BytesDownloaded  int64 `json:"bytes_downloaded"`
	Errors           int64 `json:"errors"`
}

// Data is the full on-disk checkpoint schema: visited ids (with claim
// depth), discovered vertices, summary stats, and the time it was
// written. Unknown fields in a checkpoint written by a newer version are
// ignored by encoding/json; fields this version doesn't populate default
// to their zero value on load, keeping checkpoints forward- and
// backward-compatible across minor schema growth.
type Data struct {
	Visited    map[string]int            `json:"visited"`
	Discovered map[string]*vertex.Vertex `json:"discovered"`
	Stats      StatsSnapshot             `json:"stats"`
	Timestamp  time.Time                 `json:"timestamp"`
}

// ErrWriteFailure and ErrReadFailure wrap the underlying I/O/JSON error;
// the engine logs and continues on both rather than treating either as
// fatal — a missed checkpoint write doesn't lose already-recorded state,
// and a failed resume just starts the crawl fresh.
type ErrWriteFailure struct{ Err error }

func (e *ErrWriteFailure) Error() string { return fmt.Sprintf("checkpoint write failed: %v", e.Err) }
func (e *ErrWriteFailure) Unwrap() error { return e.Err }

type ErrReadFailure struct{ Err error }

func (e *ErrReadFailure) Error() string { return fmt.Sprintf("checkpoint read failed: %v", e.Err) }
func (e *ErrReadFailure) Unwrap() error { return e.Err }

// Save writes data to path atomically: marshal, write to a sibling temp
// file, fsync, then rename over the destination. Rename is atomic on the
// same filesystem, so a reader never observes a partially-written file.
func Save(path string, data *Data) error {
	data.Timestamp = time.Now()

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &ErrWriteFailure{Err: err}
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, ".checkpoint-*.tmp")
	if err != nil {
		return &ErrWriteFailure{Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return &ErrWriteFailure{Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &ErrWriteFailure{Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ErrWriteFailure{Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &ErrWriteFailure{Err: err}
	}
	return nil
}

// Load reads and parses a checkpoint file. A missing file surfaces as a
// wrapped ErrReadFailure; callers that treat "no checkpoint yet" as a
// normal cold start should check os.IsNotExist on the unwrapped error.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrReadFailure{Err: err}
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ErrReadFailure{Err: err}
	}
	if data.Visited == nil {
		data.Visited = make(map[string]int)
	}
	if data.Discovered == nil {
		data.Discovered = make(map[string]*vertex.Vertex)
	}
	return &data, nil
}

// Exists reports whether a checkpoint file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
