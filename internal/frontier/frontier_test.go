package frontier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/videograph/walker/internal/vertex"
)

func TestPushPop_RoundTrips(t *testing.T) {
	f := New()
	f.Push(vertex.WorkItem{ID: "a", Depth: 0})

	item, ok := f.Pop(time.Second)
	assert.True(t, ok)
	assert.Equal(t, "a", item.ID)
}

func TestPop_TimesOutWhenEmpty(t *testing.T) {
	f := New()
	start := time.Now()
	_, ok := f.Pop(50 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestPop_WakesOnLatePush(t *testing.T) {
	f := New()
	go func() {
		time.Sleep(20 * time.Millisecond)
		f.Push(vertex.WorkItem{ID: "late"})
	}()

	item, ok := f.Pop(500 * time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, "late", item.ID)
}

func TestPushPop_ConcurrentNoLoss(t *testing.T) {
	f := New()
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Push(vertex.WorkItem{ID: "x"})
		}(i)
	}
	wg.Wait()

	popped := 0
	for {
		_, ok := f.Pop(100 * time.Millisecond)
		if !ok {
			break
		}
		popped++
	}
	assert.Equal(t, n, popped)
}
