package nbhm

// Get returns the value stored for key and whether it was present.
//
// Get never mutates a slot that does not belong to key. If it lands on
// a slot that is mid-migration (primed), it helps finish moving that
// one slot before resuming the search in the successor table, the same
// single-slot help a writer would perform — but unlike a writer, Get
// never calls the full chunked helper loop, so a reader under
// contention still returns in bounded time.
func (m *Map[K, V]) Get(key K) (V, bool) {
	hash := mixHash(m.hash(key))
	return getFromTable(m, m.root.Load(), key, hash)
}

func getFromTable[K comparable, V comparable](m *Map[K, V], t *table[K, V], key K, hash uint64) (V, bool) {
	var zero V

	idx := hash & t.mask
	limit := t.reprobeLimitFor()

	for probe := uint64(0); probe <= limit; probe++ {
		i := (idx + probe) & t.mask

		k := t.ks[i].Load()

		// An empty slot ends the probe sequence: per the spec's linear
		// probing discipline, a key that were ever inserted at this hash
		// would occupy some slot before the first empty one. That does
		// not, by itself, mean the key is absent from the map as a
		// whole: it may have been inserted directly into a successor
		// table after this one started migrating (see put.go's
		// redirect-on-newer behavior), so fall through to the
		// newer-table check below rather than returning here.
		if k.state == keyEmpty {
			break
		}
		if k.state == keyTomb {
			continue
		}
		if k.key != key {
			continue
		}

		v := t.vs[i].Load()
		if v.primed {
			newer := copySlotAndMaybeHelp(m, t, i, false)
			return getFromTable(m, newer, key, hash)
		}
		if v.state != valuePresent {
			return zero, false
		}
		return v.val, true
	}

	if newer := t.newer.Load(); newer != nil {
		return getFromTable(m, newer, key, hash)
	}
	return zero, false
}
