package nbhm

import "sync/atomic"

// reprobeLimit is the minimum number of linear-probe steps a lookup or
// insert tries before giving up on a table and either declaring a key
// absent (reads) or forcing a resize (writes). Every table adds a
// capacity-scaled allowance (capacity/16) on top, so larger tables
// tolerate proportionally longer probe runs.
const reprobeLimit = 10

// table is one generation of the map's backing storage: a fixed-size,
// open-addressed array of key/value slots plus the migration control
// block (MCB) fields that let readers and writers cooperatively copy
// this table's live entries into its successor.
//
// A table never grows in place. Once newer is set, this table is
// frozen for writes; every write either lands in newer or helps copy a
// slot there first.
type table[K comparable, V comparable] struct {
	capacity uint64
	mask     uint64

	ks     []atomic.Pointer[keySlot[K]]
	vs     []atomic.Pointer[valueSlot[V]]
	hashes []atomic.Uint64

	// Migration control block. copyIdx hands out work in chunks to
	// helpers; copyDone is the count of slots that have reached a
	// terminal (sealed) state; slotsUsed is an approximate count of
	// non-empty key slots used to decide when this table itself is
	// getting full. newer is nil until a resize has been started.
	copyIdx   atomic.Int64
	copyDone  atomic.Int64
	slotsUsed atomic.Int64
	size      atomic.Int64
	newer     atomic.Pointer[table[K, V]]
}

func newTable[K comparable, V comparable](capacity uint64) *table[K, V] {
	t := &table[K, V]{
		capacity: capacity,
		mask:     capacity - 1,
		ks:       make([]atomic.Pointer[keySlot[K]], capacity),
		vs:       make([]atomic.Pointer[valueSlot[V]], capacity),
		hashes:   make([]atomic.Uint64, capacity),
	}

	empty := emptyKeySlot[K]()
	emptyVal := emptyValueSlot[V]()

	for i := range t.ks {
		t.ks[i].Store(empty)
		t.vs[i].Store(emptyVal)
	}

	return t
}

// reprobeLimitFor returns the number of probe steps a caller should try
// on this table before concluding a key is absent (or, for writers,
// before forcing a resize). See spec discussion in SPEC_FULL.md §5.
func (t *table[K, V]) reprobeLimitFor() uint64 {
	return reprobeLimit + (t.capacity >> 4)
}
