package nbhm

import "sync/atomic"

// Map is a concurrent, lock-free hash map keyed by K with comparable
// values V. Every exported method may be called concurrently from any
// number of goroutines without external synchronization; no method
// blocks on another goroutine's progress (wait-free for reads,
// lock-free for writes: a write may retry, but the system as a whole
// always makes progress).
//
// The zero Map is not usable; construct one with New or NewWithConfig.
//
// Map makes no ordering guarantees across keys: two goroutines racing
// a Put on key A and a Put on key B may observe either order. A single
// key's operations are linearizable with respect to each other.
type Map[K comparable, V comparable] struct {
	root       atomic.Pointer[table[K, V]]
	lastResize atomic.Int64
	hash       func(K) uint64
}

// New returns an empty Map with a default initial capacity and the
// package's default hasher.
func New[K comparable, V comparable]() *Map[K, V] {
	return NewWithConfig[K, V](Config[K]{})
}

// NewWithConfig returns an empty Map configured per cfg. NewWithConfig
// never fails: an invalid or out-of-range InitialCapacity is silently
// clamped rather than rejected.
func NewWithConfig[K comparable, V comparable](cfg Config[K]) *Map[K, V] {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = defaultHasher[K]()
	}

	m := &Map[K, V]{hash: hasher}
	m.root.Store(newTable[K, V](clampInitialCapacity(cfg.InitialCapacity)))
	m.lastResize.Store(0)

	return m
}

// Len returns an approximate count of the keys currently present in
// the map. Because writes and migrations proceed without locking the
// whole table, a concurrently-modified map's Len is a snapshot that
// may already be stale by the time it is returned; it is exact only
// when no goroutine is concurrently writing.
func (m *Map[K, V]) Len() int {
	t := m.root.Load()
	for {
		newer := t.newer.Load()
		if newer == nil {
			break
		}
		t = newer
	}

	n := t.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
