package activity

import (
	"context"
	"sync"
)

// Feed — кольцевой буфер последних событий в памяти, его отдает GET /api/activity.
type Feed struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{events: make([]Event, size)}
}

func (f *Feed) WriteBatch(_ context.Context, events []Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range events {
		f.events[f.next] = e
		f.next = (f.next + 1) % len(f.events)
		if f.next == 0 {
			f.full = true
		}
	}
	return nil
}

// Recent возвращает до limit событий, новые первыми. limit <= 0 — все.
func (f *Feed) Recent(limit int) []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.next
	if f.full {
		n = len(f.events)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Event, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (f.next - 1 - i + len(f.events)) % len(f.events)
		out = append(out, f.events[idx])
	}
	return out
}
