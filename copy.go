package nbhm

// copySlot advances slot i of table t one step toward a terminal,
// migrated state, and reports whether this call performed the step
// that finally made the slot terminal (so the caller can credit
// exactly one unit of migration progress, never double-counting a
// slot two concurrent helpers both touch).
//
// A terminal slot is one of: a key slot sealed KTomb with no value
// ever written, or a value slot sealed TombPrime (primed, no payload
// left to forward — either because the slot was always empty/deleted,
// or because its live value has already been installed in t.newer).
func copySlot[K comparable, V comparable](m *Map[K, V], t *table[K, V], i uint64) bool {
	k := t.ks[i].Load()

	for k.state == keyEmpty {
		if t.ks[i].CompareAndSwap(k, tombKeySlot[K]()) {
			return true
		}
		k = t.ks[i].Load()
	}

	if k.state == keyTomb {
		return false
	}

	v := t.vs[i].Load()
	wonPriming := false

	for !v.primed {
		primed := primeValueSlot(v)

		if t.vs[i].CompareAndSwap(v, primed) {
			v = primed
			wonPriming = true
			break
		}

		v = t.vs[i].Load()
	}

	if v.state == valueTomb {
		// TombPrime: nothing to forward. If our own CAS is what just
		// produced it (the slot held VEmpty or VTomb when we primed it),
		// that CAS is itself the step that made this slot terminal, so
		// credit it; if the slot was already TombPrime before we got
		// here, someone else already claimed that credit.
		return wonPriming
	}

	newer := t.newer.Load()
	assertInvariant(newer != nil, "copySlot: table has no successor to forward into")

	live := unprimeValueSlot(v)
	putIfMatch(m, newer, k, t.hashes[i].Load(), live, matchMigrate, nil)

	for {
		cur := t.vs[i].Load()
		if cur.state == valueTomb && cur.primed {
			return false
		}
		if t.vs[i].CompareAndSwap(cur, tombPrimeValueSlot[V]()) {
			return true
		}
	}
}

// copySlotAndMaybeHelp ensures slot i of t is (at least) forwarded to
// t's successor, optionally running the chunked helper loop afterward,
// and returns the table a caller should resume its own operation on.
func copySlotAndMaybeHelp[K comparable, V comparable](m *Map[K, V], t *table[K, V], i uint64, shouldHelp bool) *table[K, V] {
	newer := t.newer.Load()
	assertInvariant(newer != nil, "copySlotAndMaybeHelp: table has no successor")

	if copySlot(m, t, i) {
		copyCheckAndPromote(m, t, 1)
	}

	if shouldHelp {
		helpCopy(m, t)
	}

	return t.newer.Load()
}

// copyCheckAndPromote records workDone units of migration progress for
// t and, once every slot has reached a terminal state, promotes t's
// successor to be the map's new root table.
func copyCheckAndPromote[K comparable, V comparable](m *Map[K, V], t *table[K, V], workDone int64) {
	if workDone > 0 {
		for {
			done := t.copyDone.Load()
			next := done + workDone
			assertInvariant(next <= int64(t.capacity), "copyDone exceeds table capacity")

			if t.copyDone.CompareAndSwap(done, next) {
				if next == int64(t.capacity) {
					promote(m, t)
				}
				return
			}
		}
	}

	if t.copyDone.Load() == int64(t.capacity) {
		promote(m, t)
	}
}

func promote[K comparable, V comparable](m *Map[K, V], t *table[K, V]) {
	newer := t.newer.Load()
	if m.root.CompareAndSwap(t, newer) {
		m.lastResize.Store(nowNano())
	}
}
