package nbhm

// matchPolicy selects which prior states putIfMatch is willing to
// overwrite.
type matchPolicy int8

const (
	// matchAny overwrites whatever is there: absent, tombstoned, or
	// present.
	matchAny matchPolicy = iota
	// matchAnyNotTomb overwrites only a present value.
	matchAnyNotTomb
	// matchEQ overwrites only when the current value equals expected
	// (or, if expected is absent, when the slot is itself absent).
	matchEQ
	// matchMigrate is used internally by copySlot to forward a live
	// value into a successor table. It behaves like matchEQ against an
	// absent expected value, but never adjusts size: the successor
	// table's size was already seeded from the predecessor's count at
	// resize time, so counting forwarded entries again would double
	// count them.
	matchMigrate
)

func matches[V comparable](policy matchPolicy, v, expected *valueSlot[V]) bool {
	switch policy {
	case matchAny:
		return true
	case matchAnyNotTomb:
		return v.state == valuePresent
	case matchEQ, matchMigrate:
		if expected == nil || isAbsent(expected) {
			return isAbsent(v)
		}
		return v.state == valuePresent && v.val == expected.val
	default:
		return false
	}
}

func adjustSize[K comparable, V comparable](t *table[K, V], policy matchPolicy, prior, newVal *valueSlot[V]) {
	if policy == matchMigrate {
		return
	}

	wasAbsent := isAbsent(prior)
	becomesPresent := newVal.state == valuePresent

	switch {
	case wasAbsent && becomesPresent:
		t.size.Add(1)
	case !wasAbsent && newVal.state == valueTomb:
		t.size.Add(-1)
	}
}

// putIfMatch installs newVal at key's slot in t (or a successor table,
// if t is being migrated), subject to policy's match rule against the
// value currently there. It returns the value observed immediately
// before the call (an empty or tombstone slot for absent) and whether
// the CAS that installed newVal actually happened.
func putIfMatch[K comparable, V comparable](
	m *Map[K, V],
	t *table[K, V],
	newKey *keySlot[K],
	hash uint64,
	newVal *valueSlot[V],
	policy matchPolicy,
	expected *valueSlot[V],
) (prior *valueSlot[V], wrote bool) {
	assertInvariant(newKey.state == keyPresent, "putIfMatch called with a key slot that is not present")

	idx := hash & t.mask
	limit := t.reprobeLimitFor()

	var slotIdx uint64
	var k *keySlot[K]
	found := false

	for reprobes := uint64(0); reprobes <= limit; reprobes++ {
		slotIdx = (idx + reprobes) & t.mask
		k = t.ks[slotIdx].Load()

		if k.state == keyEmpty {
			if newVal.state == valueTomb {
				// Deleting a key that was never inserted: nothing to do.
				return emptyValueSlot[V](), false
			}

			if t.ks[slotIdx].CompareAndSwap(k, newKey) {
				t.slotsUsed.Add(1)
				t.hashes[slotIdx].Store(hash)
				k = newKey
				found = true
				break
			}

			// Lost the race to install a key here; the winner's key may
			// happen to be the one we're inserting (two goroutines racing
			// to insert the same key into the same empty slot), so fall
			// through to the match check below instead of reprobing past
			// it blindly.
			k = t.ks[slotIdx].Load()
		}

		if k.state == keyPresent && (k == newKey || k.key == newKey.key) {
			found = true
			break
		}
	}

	if !found {
		newer := resize(m, t)
		if policy != matchMigrate {
			helpCopy(m, t)
		}
		return putIfMatch(m, newer, newKey, hash, newVal, policy, expected)
	}
	if newer := t.newer.Load(); newer != nil {
		forwardTo := copySlotAndMaybeHelp(m, t, slotIdx, policy != matchMigrate)
		return putIfMatch(m, forwardTo, newKey, hash, newVal, policy, expected)
	}

	v := t.vs[slotIdx].Load()

	for {
		// A resize may have started since the newer check above; a
		// primed value means the slot is migrating, so finish moving it
		// and retry on the successor (copySlotAndMaybeHelp asserts that
		// the successor exists).
		if v.primed {
			forwardTo := copySlotAndMaybeHelp(m, t, slotIdx, policy != matchMigrate)
			return putIfMatch(m, forwardTo, newKey, hash, newVal, policy, expected)
		}

		if !matches(policy, v, expected) {
			return v, false
		}

		if t.vs[slotIdx].CompareAndSwap(v, newVal) {
			adjustSize(t, policy, v, newVal)
			return v, true
		}

		v = t.vs[slotIdx].Load()
	}
}

func (m *Map[K, V]) put(key K, val V, policy matchPolicy, expected *valueSlot[V]) (V, bool) {
	hash := mixHash(m.hash(key))
	newKey := presentKeySlot(key)
	newVal := presentValueSlot(val)

	prior, _ := putIfMatch(m, m.root.Load(), newKey, hash, newVal, policy, expected)
	return resultOf(prior)
}

// Put unconditionally installs val for key, returning the value it
// replaced (if any).
func (m *Map[K, V]) Put(key K, val V) (V, bool) {
	return m.put(key, val, matchAny, nil)
}

// PutIfAbsent installs val for key only if key is not currently present
// (including if it was previously removed), returning the value
// observed beforehand.
func (m *Map[K, V]) PutIfAbsent(key K, val V) (V, bool) {
	return m.put(key, val, matchEQ, emptyValueSlot[V]())
}

// Replace installs val for key only if key currently holds a present
// value, returning the value it replaced.
func (m *Map[K, V]) Replace(key K, val V) (V, bool) {
	return m.put(key, val, matchAnyNotTomb, nil)
}

// ReplaceIf installs newVal for key only if key currently holds
// oldVal, reporting whether the replacement happened.
func (m *Map[K, V]) ReplaceIf(key K, oldVal, newVal V) bool {
	hash := mixHash(m.hash(key))
	newKey := presentKeySlot(key)

	_, wrote := putIfMatch(m, m.root.Load(), newKey, hash, presentValueSlot(newVal), matchEQ, presentValueSlot(oldVal))
	return wrote
}

// Remove unconditionally deletes key, returning the value it held (if
// any).
func (m *Map[K, V]) Remove(key K) (V, bool) {
	hash := mixHash(m.hash(key))
	newKey := presentKeySlot(key)

	prior, _ := putIfMatch(m, m.root.Load(), newKey, hash, tombValueSlot[V](), matchAny, nil)
	return resultOf(prior)
}

// RemoveIf deletes key only if it currently holds oldVal, reporting
// whether the deletion happened.
func (m *Map[K, V]) RemoveIf(key K, oldVal V) bool {
	hash := mixHash(m.hash(key))
	newKey := presentKeySlot(key)

	_, wrote := putIfMatch(m, m.root.Load(), newKey, hash, tombValueSlot[V](), matchEQ, presentValueSlot(oldVal))
	return wrote
}
