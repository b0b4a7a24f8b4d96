package nbhm

// keyState is the lifecycle state of a key slot. A slot starts KEmpty
// and transitions at most once: to KPresent (an insert wins the CAS
// race for that index), or to KTomb when migration seals a still-empty
// slot. Keys are never removed from a table; deletion lives entirely in
// the value slot.
type keyState int8

const (
	keyEmpty keyState = iota
	keyPresent
	keyTomb
)

// keySlot is the immutable payload behind a table's key array. Slots are
// never mutated in place; a state change always CASes in a freshly
// allocated keySlot.
type keySlot[K comparable] struct {
	state keyState
	key   K
}

func emptyKeySlot[K comparable]() *keySlot[K] {
	return &keySlot[K]{state: keyEmpty}
}

func tombKeySlot[K comparable]() *keySlot[K] {
	return &keySlot[K]{state: keyTomb}
}

func presentKeySlot[K comparable](key K) *keySlot[K] {
	return &keySlot[K]{state: keyPresent, key: key}
}

// valueState is the logical state of a value slot, independent of
// whether it is primed. VEmpty means no value has been written to the
// slot: its key slot is empty, an insert has claimed the key but not
// yet written its value, or a conditional write (Replace, ReplaceIf)
// claimed the key and then did not match. VTomb means the key was
// deleted.
type valueState int8

const (
	valueEmpty valueState = iota
	valueTomb
	valuePresent
)

// valueSlot is the immutable payload behind a table's value array.
// primed marks a slot as frozen for migration: once primed, a value
// slot changes at most once more in its owning table, to TombPrime
// after its live data (if any) has been forwarded to the successor
// table. A primed
// VTomb slot (no payload to forward) is the migration's terminal
// "TombPrime" state.
type valueSlot[V comparable] struct {
	state  valueState
	primed bool
	val    V
}

func emptyValueSlot[V comparable]() *valueSlot[V] {
	return &valueSlot[V]{state: valueEmpty}
}

func tombValueSlot[V comparable]() *valueSlot[V] {
	return &valueSlot[V]{state: valueTomb}
}

func presentValueSlot[V comparable](val V) *valueSlot[V] {
	return &valueSlot[V]{state: valuePresent, val: val}
}

// tombPrimeValueSlot is the terminal primed-tombstone state: a sealed
// slot with nothing left to forward.
func tombPrimeValueSlot[V comparable]() *valueSlot[V] {
	return &valueSlot[V]{state: valueTomb, primed: true}
}

// primeValueSlot freezes v for migration, preserving its payload if it
// has one.
func primeValueSlot[V comparable](v *valueSlot[V]) *valueSlot[V] {
	if v.state == valuePresent {
		return &valueSlot[V]{state: valuePresent, primed: true, val: v.val}
	}
	return tombPrimeValueSlot[V]()
}

// unprimeValueSlot strips the primed bit, yielding the plain value to
// forward into a successor table.
func unprimeValueSlot[V comparable](v *valueSlot[V]) *valueSlot[V] {
	if !v.primed {
		return v
	}
	return &valueSlot[V]{state: v.state, val: v.val}
}

func isAbsent[V comparable](v *valueSlot[V]) bool {
	return v.state == valueEmpty || v.state == valueTomb
}

// resultOf translates the internal value-slot representation into the
// public (value, ok) convention used across the Map API.
func resultOf[V comparable](v *valueSlot[V]) (V, bool) {
	if v == nil || v.primed || v.state != valuePresent {
		var zero V
		return zero, false
	}
	return v.val, true
}
