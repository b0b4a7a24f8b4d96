package nbhm

// Config customizes a Map created with NewWithConfig. The zero Config
// is valid and behaves like New.
type Config[K comparable] struct {
	// InitialCapacity is a hint for the number of distinct keys the map
	// should hold before its first resize. It is rounded up to a power
	// of two, clamped to [minCapacity, maxInitialCapacity], and then given
	// extra headroom for linear probing, so the realized capacity is
	// generally larger than the value given here. Zero uses the
	// package default (no headroom multiplier applied).
	InitialCapacity int

	// Hasher computes the hash for a key. It need not be
	// collision-resistant: every hash is mixed through an avalanche
	// finalizer before use, so a hasher with weak bit dispersion (an
	// identity hash over small integers, say) is still safe. Nil uses
	// a generic, reflection-free default hasher.
	Hasher func(K) uint64
}

// Hardcoded capacity limits. They exist to keep index arithmetic safely
// away from overflow and to bound how much a single resize can commit
// to allocating; they are not tuned to any particular workload. A
// request outside this range is clamped rather than rejected, matching
// NewWithConfig's "never fails" contract.
const (
	defaultCapacity = 16
	minCapacity     = 8
	maxCapacity     = 1 << 30
)

// maxInitialCapacity is the largest InitialCapacity hint honored before
// the probe-headroom multiplier is applied.
const maxInitialCapacity = 1 << 20

// clampInitialCapacity realizes the capacity of a map requested with an
// explicit InitialCapacity hint: round up to a power of two, clamp to
// the supported range, then multiply for probe headroom.
func clampInitialCapacity(n int) uint64 {
	if n <= 0 {
		return defaultCapacity
	}

	cap := nextPow2(uint64(n))
	if cap < minCapacity {
		cap = minCapacity
	}
	if cap > maxInitialCapacity {
		cap = maxInitialCapacity
	}

	headroom := cap * 4
	if headroom > maxCapacity {
		headroom = maxCapacity
	}

	return headroom
}

func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
