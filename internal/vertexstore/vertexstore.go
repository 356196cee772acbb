// Package vertexstore is the single source of truth for which vertex IDs
// have been claimed and which have been fully recorded. It is the
// linearization point of the whole crawl: every worker's decision to
// expand a given ID, exactly once, is made here.
package vertexstore

import (
	"errors"
	"sync"

	"github.com/videograph/walker/internal/vertex"
)

// ErrAlreadyRecorded signals an invariant violation: Record was called
// twice for the same ID. The engine treats this as fatal, since it can
// only happen if two workers both believed they held the claim.
var ErrAlreadyRecorded = errors.New("vertexstore: id already recorded")

// ErrDiscoveryCapReached signals that the store already holds max
// recorded vertices; the caller's freshly expanded vertex is discarded
// rather than recorded. The engine treats this as a normal exit
// condition, not a fatal one.
var ErrDiscoveryCapReached = errors.New("vertexstore: discovery cap reached")

// Store tracks claimed ("visited") and recorded ("discovered") vertices.
// A single RWMutex guards both maps, matching the coarse-grained locking
// style used throughout the crawl's shared state.
type Store struct {
	mu         sync.RWMutex
	visited    map[string]int // id -> claim depth
	discovered map[string]*vertex.Vertex
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		visited:    make(map[string]int),
		discovered: make(map[string]*vertex.Vertex),
	}
}

// TryClaim atomically marks id as visited at the given depth if it has not
// been claimed before. It returns true if this call won the claim. Like
// every mutator of the store, it takes the write lock unconditionally, so
// two concurrent TryClaim calls for the same id can never both return true.
func (s *Store) TryClaim(id string, depth int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visited[id]; ok {
		return false
	}
	s.visited[id] = depth
	return true
}

// Record stores the fully-expanded vertex for an id that has already been
// claimed, rejecting it once max vertices are already recorded. Calling
// Record twice for the same id is a programming error in the engine, not
// a recoverable runtime condition, so it returns ErrAlreadyRecorded rather
// than silently overwriting. The cap check happens under the same write
// lock as the insert, so len(discovered) can never exceed max even when
// every worker races WAITING_FOR_WORK's cap check simultaneously: max <= 0
// means uncapped.
func (s *Store) Record(v *vertex.Vertex, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.discovered[v.ID]; ok {
		return ErrAlreadyRecorded
	}
	if max > 0 && len(s.discovered) >= max {
		return ErrDiscoveryCapReached
	}
	s.discovered[v.ID] = v
	return nil
}

// Visited reports whether id has been claimed, and at what depth.
func (s *Store) Visited(id string) (depth int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	depth, ok = s.visited[id]
	return depth, ok
}

// DiscoveredCount returns how many vertices have been fully recorded.
func (s *Store) DiscoveredCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.discovered)
}

// VisitedCount returns how many ids have been claimed (recorded or not).
func (s *Store) VisitedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visited)
}

// Get returns a recorded vertex by id.
func (s *Store) Get(id string) (*vertex.Vertex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.discovered[id]
	return v, ok
}

// All returns a snapshot slice of every recorded vertex. The slice is a
// copy; callers may range over it without holding any lock.
func (s *Store) All() []*vertex.Vertex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*vertex.Vertex, 0, len(s.discovered))
	for _, v := range s.discovered {
		out = append(out, v)
	}
	return out
}

// Snapshot returns copies of the visited and discovered maps, used by the
// checkpoint writer so it never touches the store's internal maps
// directly.
func (s *Store) Snapshot() (visited map[string]int, discovered map[string]*vertex.Vertex) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visited = make(map[string]int, len(s.visited))
	for k, v := range s.visited {
		visited[k] = v
	}
	discovered = make(map[string]*vertex.Vertex, len(s.discovered))
	for k, v := range s.discovered {
		discovered[k] = v
	}
	return visited, discovered
}

// Restore seeds the store from a checkpoint. It is only safe to call
// before any worker starts.
func (s *Store) Restore(visited map[string]int, discovered map[string]*vertex.Vertex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visited = make(map[string]int, len(visited))
	for k, v := range visited {
		s.visited[k] = v
	}
	s.discovered = make(map[string]*vertex.Vertex, len(discovered))
	for k, v := range discovered {
		s.discovered[k] = v
	}
}
