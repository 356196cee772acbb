// Package config defines the walker's runtime configuration: how it is
// loaded, validated, and persisted between runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// WalkConfig is the full set of knobs a crawl run is configured with. It is
// JSON-loadable/-saveable so the same file can drive `walker run` and
// `walker resume`.
type WalkConfig struct {
	// Seeds and discovery bounds.
	SeedURLs      []string `json:"seed_urls"`
	RandomSeeds   int      `json:"random_seeds"`
	MaxDiscovered int      `json:"max_discovered"`
	MaxDepth      int      `json:"max_depth"`

	// Concurrency and pacing.
	WorkerCount       int           `json:"worker_count"`
	RequestsPerSec    float64       `json:"requests_per_second"`
	RandomWalkProb    float64       `json:"random_walk_prob"`
	QuiescencePoll    time.Duration `json:"quiescence_poll"`
	QuiescenceRecheck time.Duration `json:"quiescence_recheck"`

	// Expansion strategy.
	UseRenderFallback bool `json:"use_render_fallback"`
	MaxRelatedIDs     int  `json:"max_related_ids"`

	// Download sink.
	DownloadEnabled bool   `json:"download_enabled"`
	DownloadDir     string `json:"download_dir"`

	// Persistence paths.
	CheckpointPath     string `json:"checkpoint_path"`
	CheckpointInterval int    `json:"checkpoint_interval"` // processed vertices between saves
	GraphStorePath     string `json:"graph_store_path"`
	ExportPath         string `json:"export_path"`
	GraphvizPath       string `json:"graphviz_path"`

	// Ambient.
	LogLevel string `json:"log_level"`

	// RandomSeed is zero by default, meaning "derive from time at run
	// start"; the caller, not Validate, makes that choice, so Validate
	// stays deterministic.
	RandomSeed int64 `json:"random_seed"`
}

// Default returns the default configuration. It carries no seeds, so
// Validate rejects it until SeedURLs or RandomSeeds is set.
func Default() *WalkConfig {
	return &WalkConfig{
		MaxDiscovered:      1000,
		MaxDepth:           50,
		WorkerCount:        8,
		RequestsPerSec:     1.0,
		RandomWalkProb:     0.8,
		QuiescencePoll:     5 * time.Second,
		QuiescenceRecheck:  1 * time.Second,
		MaxRelatedIDs:      25,
		CheckpointPath:     "checkpoint.json",
		CheckpointInterval: 100,
		GraphStorePath:     "graph.db",
		ExportPath:         "out.jsonl",
		LogLevel:           "info",
	}
}

// Validate clamps out-of-range values to sane defaults rather than failing,
// except for conditions that make the run meaningless, which surface as a
// ConfigurationError before any worker is spawned. num_workers < 1 is the
// canonical example of such a condition; max_discovered <= 0 is not one —
// it is a legitimate boundary meaning "discover nothing," so the engine
// starts and exits immediately with zero-valued stats instead of failing.
func (c *WalkConfig) Validate() error {
	if len(c.SeedURLs) == 0 && c.RandomSeeds <= 0 {
		return &ConfigurationError{Reason: "no seed URLs and random_seeds <= 0: nothing to crawl"}
	}
	if c.WorkerCount <= 0 {
		return &ConfigurationError{Reason: "worker_count must be positive"}
	}
	if c.MaxDiscovered < 0 {
		c.MaxDiscovered = 0
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
	if c.RequestsPerSec <= 0 {
		c.RequestsPerSec = 1.0
	}
	if c.RandomWalkProb < 0 {
		c.RandomWalkProb = 0
	}
	if c.RandomWalkProb > 1 {
		c.RandomWalkProb = 1
	}
	if c.QuiescencePoll <= 0 {
		c.QuiescencePoll = 5 * time.Second
	}
	if c.QuiescenceRecheck <= 0 {
		c.QuiescenceRecheck = 1 * time.Second
	}
	if c.MaxRelatedIDs <= 0 {
		c.MaxRelatedIDs = 25
	}
	if c.CheckpointPath == "" {
		c.CheckpointPath = "checkpoint.json"
	}
	if c.CheckpointInterval <= 0 {
		c.CheckpointInterval = 100
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// ConfigurationError indicates a run cannot start at all.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Load reads a WalkConfig from a JSON file, starting from Default() so
// fields the file omits keep sane values.
func Load(path string) (*WalkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes a WalkConfig to a JSON file.
func (c *WalkConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Clone returns a copy safe to hand to a goroutine that must not observe
// later mutation of the original (e.g. appending to SeedURLs).
func (c *WalkConfig) Clone() *WalkConfig {
	cp := *c
	cp.SeedURLs = append([]string(nil), c.SeedURLs...)
	return &cp
}
