// Package engine implements the concurrent crawl engine: the worker pool
// that pulls candidate vertices off the frontier, paces itself, expands
// them, and records the results, until the discovery cap is hit or the
// frontier goes quiet.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/videograph/walker/internal/checkpoint"
	"github.com/videograph/walker/internal/config"
	"github.com/videograph/walker/internal/expander"
	"github.com/videograph/walker/internal/frontier"
	"github.com/videograph/walker/internal/ratelimit"
	"github.com/videograph/walker/internal/scheduler"
	"github.com/videograph/walker/internal/sink"
	"github.com/videograph/walker/internal/urlutil"
	"github.com/videograph/walker/internal/vertex"
	"github.com/videograph/walker/internal/vertexstore"
)

// Engine is the crawl's concurrency owner: it spawns WorkerCount worker
// goroutines, each running the WAITING_FOR_WORK -> CLAIM/QUIESCE_CHECK ->
// PACE -> EXPAND -> RECORD state machine, and joins them on Run's return.
type Engine struct {
	cfg      *config.WalkConfig
	expander expander.Expander
	sink     sink.Sink
	log      *zap.SugaredLogger

	store    *vertexstore.Store
	frontier *frontier.Frontier
	policy   *scheduler.Policy

	rngMu sync.Mutex
	rng   *rand.Rand

	stats *Stats

	stopped atomic.Bool

	// OnDiscover, if set, fires synchronously in RECORD for every newly
	// recorded vertex. A panic inside it is recovered and logged rather
	// than propagated, since it is a caller-supplied collaborator, not an
	// engine invariant.
	OnDiscover func(*vertex.Vertex)

	// Checkpointer, if set, is invoked in RECORD every CheckpointInterval
	// processed vertices. It is the caller's responsibility to handle its
	// own save errors (by logging them) since a failed checkpoint write
	// must never be fatal to the crawl.
	Checkpointer func()
}

// New validates cfg and builds an Engine. It returns Validate's
// *config.ConfigurationError as-is, before any goroutine is spawned, if cfg
// is unusable.
func New(cfg *config.WalkConfig, exp expander.Expander, dlSink sink.Sink, log *zap.SugaredLogger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dlSink == nil {
		dlSink = sink.NoopSink{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		cfg:      cfg,
		expander: exp,
		sink:     dlSink,
		log:      log,
		store:    vertexstore.New(),
		frontier: frontier.New(),
		policy:   scheduler.New(cfg.RandomWalkProb),
		rng:      rand.New(rand.NewSource(seed)),
		stats:    NewStats(),
	}, nil
}

// Store exposes the underlying vertex store, e.g. for export after Run.
func (e *Engine) Store() *vertexstore.Store { return e.store }

// Stats exposes the live stats counters.
func (e *Engine) Stats() *Stats { return e.stats }

// Seed enqueues a vertex id as a depth-0 seed with no parent.
func (e *Engine) Seed(id string) {
	e.frontier.Push(vertex.WorkItem{ID: id, Depth: 0, ParentID: ""})
}

// Restore seeds the engine's vertex store and re-enqueues the frontier
// edge of every discovered vertex whose related ids were only partially
// walked, implementing resume: previously recorded vertices are never
// re-expanded (their ids stay in `visited`), but their related ids that
// were never themselves claimed get pushed so the walk can continue
// outward from where it left off.
func (e *Engine) Restore(data *checkpoint.Data) {
	visited := make(map[string]int, len(data.Visited))
	for id, depth := range data.Visited {
		visited[id] = depth
	}
	discovered := make(map[string]*vertex.Vertex, len(data.Discovered))
	for id, v := range data.Discovered {
		discovered[id] = v
	}
	e.store.Restore(visited, discovered)

	for _, v := range discovered {
		for _, relatedID := range v.RelatedIDs {
			if _, ok := visited[relatedID]; !ok {
				e.frontier.Push(vertex.WorkItem{ID: relatedID, Depth: v.Depth + 1, ParentID: v.ID})
			}
		}
	}
}

// Stop requests all workers exit at their next WAITING_FOR_WORK check.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Run spawns cfg.WorkerCount workers and blocks until they all exit
// (discovery cap hit, frontier quiesced, or Stop called), then returns a
// final stats snapshot. ctx cancellation aborts in-flight expansions
// promptly rather than waiting for them to time out naturally.
func (e *Engine) Run(ctx context.Context) (Snapshot, error) {
	if e.cfg.MaxDiscovered <= 0 {
		// max_discovered = 0 means "discover nothing": start and exit
		// immediately rather than spawning workers that would all see
		// the cap already reached.
		return Snapshot{}, nil
	}

	var wg sync.WaitGroup
	rateGates := make([]*ratelimit.RateGate, e.cfg.WorkerCount)
	for i := range rateGates {
		rateGates[i] = ratelimit.New(e.cfg.RequestsPerSec)
	}

	for i := 0; i < e.cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(workerID int, gate *ratelimit.RateGate) {
			defer wg.Done()
			e.worker(ctx, workerID, gate)
		}(i, rateGates[i])
	}

	wg.Wait()
	return e.stats.Snapshot(), nil
}

// worker runs the state machine: WAITING_FOR_WORK -> CLAIM/QUIESCE_CHECK/
// EXIT -> PACE -> EXPAND -> RECORD -> back to WAITING_FOR_WORK.
func (e *Engine) worker(ctx context.Context, id int, gate *ratelimit.RateGate) {
	log := e.log.With("worker", id)
	log.Debugw("worker started")

	for {
		// WAITING_FOR_WORK
		if e.stopped.Load() {
			log.Debugw("worker exiting: stop requested")
			return
		}
		if ctx.Err() != nil {
			log.Debugw("worker exiting: context done")
			return
		}
		if e.cfg.MaxDiscovered > 0 && e.store.DiscoveredCount() >= e.cfg.MaxDiscovered {
			// Cheap fast path to avoid claiming and expanding once the
			// cap is obviously already met; Store.Record enforces the
			// cap linearizably regardless, so a race here just costs an
			// extra expansion, never an over-cap recording.
			log.Debugw("worker exiting: discovery cap reached")
			return
		}

		item, ok := e.frontier.Pop(e.cfg.QuiescencePoll)
		if !ok {
			// QUIESCE_CHECK: one blocking wait came up empty; recheck
			// briefly in case another worker is mid-push, then exit if
			// it's still empty.
			time.Sleep(e.cfg.QuiescenceRecheck)
			if e.frontier.Len() == 0 {
				log.Debugw("worker exiting: frontier quiesced")
				return
			}
			continue
		}

		// CLAIM
		if item.Depth > e.cfg.MaxDepth {
			continue
		}
		if !e.store.TryClaim(item.ID, item.Depth) {
			continue
		}

		// PACE
		if err := gate.Wait(ctx); err != nil {
			return
		}

		// EXPAND
		v, outcome, err := e.expander.Expand(ctx, item.ID)
		if err != nil {
			e.stats.recordError()
			log.Debugw("expansion failed", "id", item.ID, "outcome", outcome, "err", err)
			continue
		}
		v.Depth = item.Depth
		v.ParentID = item.ParentID
		v.URL = urlutil.CanonicalURL(item.ID)
		v.DiscoveredAt = time.Now()

		// RECORD
		if err := e.store.Record(v, e.cfg.MaxDiscovered); err != nil {
			if errors.Is(err, vertexstore.ErrDiscoveryCapReached) {
				// The cap was reached by another worker between this
				// worker's WAITING_FOR_WORK check and its Record call;
				// the vertex was expanded but is discarded, and this
				// worker exits like any other cap-reached condition.
				log.Debugw("worker exiting: discovery cap reached", "id", item.ID)
				return
			}
			// ErrAlreadyRecorded signals a claim-uniqueness bug, not a
			// runtime condition a worker can recover from.
			panic(err)
		}
		e.stats.recordDiscovered()
		processed := e.stats.recordProcessed()

		e.fireOnDiscover(v)

		if e.sink != nil {
			if out, err := e.sink.Acquire(ctx, v); err != nil {
				e.stats.recordError()
				log.Debugw("sink acquire failed", "id", v.ID, "err", err)
			} else if out.Acquired {
				e.stats.recordDownload(out.Bytes)
			}
		}

		e.pushRelated(v, item.Depth)

		if e.Checkpointer != nil && processed%int64(e.cfg.CheckpointInterval) == 0 {
			e.Checkpointer()
		}
	}
}

// fireOnDiscover invokes OnDiscover if set, recovering and logging any
// panic so a misbehaving callback can never take down a worker.
func (e *Engine) fireOnDiscover(v *vertex.Vertex) {
	if e.OnDiscover == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Warnw("on_discover callback panicked", "id", v.ID, "err", r)
		}
	}()
	e.OnDiscover(v)
}

// pushRelated applies the scheduler policy to a freshly recorded vertex's
// related ids and pushes the chosen work items.
func (e *Engine) pushRelated(v *vertex.Vertex, currentDepth int) {
	if currentDepth+1 > e.cfg.MaxDepth {
		return
	}
	e.rngMu.Lock()
	items := e.policy.SelectEdges(v.ID, v.RelatedIDs, currentDepth, e.rng)
	e.rngMu.Unlock()

	for _, item := range items {
		if _, visited := e.store.Visited(item.ID); visited {
			continue
		}
		e.frontier.Push(item)
	}
}
