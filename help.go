package nbhm

// copyChunkMax bounds how many slots a single helper reserves at a
// time, so that one goroutine can't claim the entire table and starve
// every other concurrent helper of work.
const copyChunkMax = 1024

// helpCopy runs one bounded round of migration work on t's behalf: it
// reserves a chunk of slots via the copy cursor, copies each, and
// records the progress. It is what a writer calls after it has already
// handled its own slot, to make sure a table under heavy write load
// still finishes migrating even if no reader ever visits certain
// slots.
func helpCopy[K comparable, V comparable](m *Map[K, V], t *table[K, V]) {
	if t.newer.Load() == nil {
		return
	}
	helpCopyImpl(m, t, false)
}

// helpCopyImpl drives migration forward. With copyAll false it performs
// one chunk's worth of work and returns (the caller has its own
// progress to make). With copyAll true it keeps working, chunk after
// chunk, until copyDone reaches capacity — used when a caller needs the
// table fully migrated before proceeding.
//
// Once the copy cursor has swept the table twice (reached 2×capacity)
// without the migration completing (every remaining slot belongs to a helper that
// is stalled or gone), helpCopyImpl switches to scanning every slot on
// each pass instead of reserving fresh chunks, so a stalled helper can
// never permanently strand a handful of slots.
func helpCopyImpl[K comparable, V comparable](m *Map[K, V], t *table[K, V], copyAll bool) {
	chunk := t.capacity
	if chunk > copyChunkMax {
		chunk = copyChunkMax
	}

	for t.copyDone.Load() < int64(t.capacity) {
		cur := t.copyIdx.Load()
		panicMode := cur >= int64(t.capacity)<<1

		var start uint64
		var thisChunk uint64

		if panicMode {
			start = 0
			thisChunk = t.capacity
		} else {
			if !t.copyIdx.CompareAndSwap(cur, cur+int64(chunk)) {
				continue
			}
			start = uint64(cur)
			thisChunk = chunk
		}

		workDone := int64(0)
		for j := uint64(0); j < thisChunk; j++ {
			idx := (start + j) & t.mask
			if copySlot(m, t, idx) {
				workDone++
			}
		}

		if workDone > 0 {
			copyCheckAndPromote(m, t, workDone)
		}

		if panicMode {
			continue
		}

		if !copyAll {
			return
		}
	}

	copyCheckAndPromote(m, t, 0)
}

// drainMigration fully migrates t's live chain onto its newest
// successor before returning. It is exposed to tests (see
// export_test.go) that need a deterministic post-migration snapshot.
func drainMigration[K comparable, V comparable](m *Map[K, V], t *table[K, V]) {
	for {
		newer := t.newer.Load()
		if newer == nil {
			return
		}
		helpCopyImpl(m, t, true)
		t = newer
	}
}
