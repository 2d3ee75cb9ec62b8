// SPDX-License-Identifier: GPL-3.0-or-later
package watcher

import "sync"

// DedupCache remembers the uids already handed to the dispatcher. It holds
// at most twice its capacity; once full the oldest half is forgotten.
type DedupCache struct {
	mu       sync.Mutex
	capacity int
	order    []uint32
	known    map[uint32]struct{}
}

func NewDedupCache(capacity int) *DedupCache {
	if capacity < 1 {
		capacity = 1
	}
	return &DedupCache{
		capacity: capacity,
		order:    make([]uint32, 0, 2*capacity),
		known:    make(map[uint32]struct{}, 2*capacity),
	}
}

func (d *DedupCache) Contains(uid uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.known[uid]
	return ok
}

// Add inserts uid and reports whether it was unknown.
func (d *DedupCache) Add(uid uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.known[uid]; ok {
		return false
	}

	if len(d.order) >= 2*d.capacity {
		d.evict()
	}

	d.order = append(d.order, uid)
	d.known[uid] = struct{}{}
	return true
}

// evict keeps the newest capacity entries.
func (d *DedupCache) evict() {
	drop := len(d.order) - d.capacity
	for _, uid := range d.order[:drop] {
		delete(d.known, uid)
	}
	kept := make([]uint32, d.capacity, 2*d.capacity)
	copy(kept, d.order[drop:])
	d.order = kept
}

func (d *DedupCache) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

func (d *DedupCache) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.order = d.order[:0]
	d.known = make(map[uint32]struct{}, 2*d.capacity)
}
