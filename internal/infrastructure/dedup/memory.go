package dedup

import (
	"context"
	"sync"
	"time"
)

// memoryFilter keeps seen ids in a map and prunes expired entries on every
// call, so the map never grows past the messages of the last window.
type memoryFilter struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

func NewMemoryFilter(window time.Duration) Filter {
	return &memoryFilter{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
}

func (f *memoryFilter) Seen(_ context.Context, messageID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	for id, at := range f.seen {
		if now.Sub(at) > f.window {
			delete(f.seen, id)
		}
	}

	if _, ok := f.seen[messageID]; ok {
		return true, nil
	}
	f.seen[messageID] = now
	return false, nil
}
