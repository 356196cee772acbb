package engine

import (
	"sync/atomic"
	"time"

	"github.com/videograph/walker/internal/checkpoint"
)

// Stats holds the atomic counters every worker updates, matching the
// counters named by the crawl's external stats contract.
type Stats struct {
	videosDiscovered atomic.Int64
	videosProcessed  atomic.Int64
	videosDownloaded atomic.Int64
	bytesDownloaded  atomic.Int64
	errors           atomic.Int64
	startTime        time.Time
}

// NewStats returns a Stats with startTime set to now.
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

func (s *Stats) recordDiscovered()    { s.videosDiscovered.Add(1) }
func (s *Stats) recordProcessed() int64 { return s.videosProcessed.Add(1) }
func (s *Stats) recordError()         { s.errors.Add(1) }
func (s *Stats) recordDownload(bytes int64) {
	s.videosDownloaded.Add(1)
	s.bytesDownloaded.Add(bytes)
}

// Snapshot is an immutable view of Stats at a point in time, with derived
// fields computed.
type Snapshot struct {
	VideosDiscovered int64
	VideosProcessed  int64
	VideosDownloaded int64
	BytesDownloaded  int64
	Errors           int64
	ElapsedSeconds   float64
	VideosPerSecond  float64
}

// Snapshot reads all counters and computes the derived rate fields.
func (s *Stats) Snapshot() Snapshot {
	elapsed := time.Since(s.startTime).Seconds()
	processed := s.videosProcessed.Load()

	var rate float64
	if elapsed > 0 {
		rate = float64(processed) / elapsed
	}

	return Snapshot{
		VideosDiscovered: s.videosDiscovered.Load(),
		VideosProcessed:  processed,
		VideosDownloaded: s.videosDownloaded.Load(),
		BytesDownloaded:  s.bytesDownloaded.Load(),
		Errors:           s.errors.Load(),
		ElapsedSeconds:   elapsed,
		VideosPerSecond:  rate,
	}
}

// ToCheckpoint converts a Snapshot into the persisted checkpoint schema's
// stats block.
func (s Snapshot) ToCheckpoint() checkpoint.StatsSnapshot {
	return checkpoint.StatsSnapshot{
		VideosDiscovered: s.VideosDiscovered,
		VideosProcessed:  s.VideosProcessed,
		VideosDownloaded: s.VideosDownloaded,
		BytesDownloaded:  s.BytesDownloaded,
		Errors:           s.Errors,
	}
}
