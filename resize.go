package nbhm

import "time"

// resizeThrottle is the window used to detect "thrashing": repeated
// resizes in quick succession, usually caused by a burst of inserts
// landing while the previous migration is still copying. Within the
// window, a table with at least half of its key slots claimed (slotsUsed,
// which also counts keys whose values were deleted) grows by 4x instead
// of 2x, trading a larger allocation now for fewer
// back-to-back migrations later.
const resizeThrottle = 5 * time.Millisecond

// resize installs (or returns the already-installed) successor table
// for t. It is idempotent: once a successor exists, every caller
// racing to resize the same table observes the same one.
func resize[K comparable, V comparable](m *Map[K, V], t *table[K, V]) *table[K, V] {
	if newer := t.newer.Load(); newer != nil {
		return newer
	}

	newCap := nextResizeCapacity(m, t)

	next := newTable[K, V](newCap)
	// Seed the successor's approximate size from its predecessor so
	// that forwarded entries (which matchMigrate never counts) are not
	// lost from Len's bookkeeping.
	next.size.Store(t.size.Load())

	if t.newer.CompareAndSwap(nil, next) {
		m.lastResize.Store(nowNano())
		return next
	}

	// Lost the race to install a successor; use the winner's table
	// instead of the one just allocated.
	return t.newer.Load()
}

func nextResizeCapacity[K comparable, V comparable](m *Map[K, V], t *table[K, V]) uint64 {
	oldCap := t.capacity
	newCap := oldCap << 1

	last := m.lastResize.Load()
	recent := last != 0 && nowNano()-last < int64(resizeThrottle)

	used := t.slotsUsed.Load()
	if recent && used > 0 && uint64(used) >= oldCap/2 {
		newCap = oldCap << 2
	}

	if newCap > maxCapacity {
		newCap = maxCapacity
	}
	if newCap <= oldCap {
		newCap = oldCap
	}

	return newCap
}

func nowNano() int64 {
	return time.Now().UnixNano()
}
