package nbhm

import "github.com/dolthub/maphash"

// mixHash applies an avalanche finalizer to a caller- or default-hasher
// hash. Every lookup and probe in the map reprobes against mixHash's
// output, never the raw hash, so a hasher with poor bit dispersion in
// its low bits (common for integer keys) still spreads evenly across a
// table's index space.
func mixHash(h uint64) uint64 {
	h += (h << 15) ^ 0xffffcd7d
	h ^= h >> 10
	h += h << 3
	h ^= h >> 6
	h += (h << 2) + (h << 14)
	return h ^ (h >> 16)
}

// defaultHasher builds the hash function used when a Config leaves
// Hasher nil: a generic, allocation-free hasher over K's memory
// representation.
func defaultHasher[K comparable]() func(K) uint64 {
	h := maphash.NewHasher[K]()
	return h.Hash
}
