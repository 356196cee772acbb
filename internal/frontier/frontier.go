// Package frontier is the shared work queue every crawl worker pulls
// candidate vertices from. It is genuinely MPMC: many workers push
// discovered edges and many workers block waiting to pop, so Pop needs
// real blocking-with-timeout semantics instead of a non-blocking nil
// return.
package frontier

import (
	"container/list"
	"sync"
	"time"

	"github.com/videograph/walker/internal/vertex"
)

// Frontier is an MPMC queue of pending vertex.WorkItems. Push never blocks.
// Pop blocks up to a timeout waiting for work, returning ok=false if none
// arrived in time. No ordering guarantee (FIFO or otherwise) is part of
// the contract; only liveness and non-loss of pushed items are.
type Frontier struct {
	mu     sync.Mutex
	items  *list.List
	signal chan struct{} // buffered(1); a send wakes exactly one blocked Pop
}

// New returns an empty Frontier.
func New() *Frontier {
	return &Frontier{
		items:  list.New(),
		signal: make(chan struct{}, 1),
	}
}

// Push adds an item to the frontier and wakes one blocked popper, if any.
func (f *Frontier) Push(item vertex.WorkItem) {
	f.mu.Lock()
	f.items.PushBack(item)
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// tryPop removes and returns the front item without blocking.
func (f *Frontier) tryPop() (vertex.WorkItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	elem := f.items.Front()
	if elem == nil {
		return vertex.WorkItem{}, false
	}
	f.items.Remove(elem)
	return elem.Value.(vertex.WorkItem), true
}

// Pop blocks until an item is available or timeout elapses, returning
// ok=false on timeout. It never blocks forever even if Push is never
// called again, which is what lets the engine's quiescence check work.
func (f *Frontier) Pop(timeout time.Duration) (item vertex.WorkItem, ok bool) {
	if item, ok = f.tryPop(); ok {
		return item, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-f.signal:
			if item, ok = f.tryPop(); ok {
				return item, true
			}
			// Someone else grabbed it first; keep waiting out the
			// remaining timeout window rather than restarting it.
		case <-timer.C:
			return vertex.WorkItem{}, false
		}
	}
}

// Len returns the current queue length, best-effort (for stats/UI only).
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items.Len()
}
