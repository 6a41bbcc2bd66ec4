package notify

import "sync"

// Buffer keeps the last N event strings, newest at the tail. One writer
// (the subscriber), many concurrent readers (the /events handler).
type Buffer struct {
	mu       sync.Mutex
	capacity int
	items    []string
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 20
	}
	return &Buffer{capacity: capacity}
}

// Append adds an entry, evicting the oldest entries once over capacity.
func (b *Buffer) Append(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, s)
	if n := len(b.items) - b.capacity; n > 0 {
		b.items = append(b.items[:0:0], b.items[n:]...)
	}
}

// Snapshot returns a copy of the buffer contents, oldest first. Callers
// never see the live slice.
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.items))
	copy(out, b.items)
	return out
}

// Len reports the current number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
