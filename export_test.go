package nbhm

// Export internal functions for testing.
// This file is only compiled during tests.

// DrainMigrationForTesting blocks until every in-flight resize on m has
// fully migrated, so a test can take a deterministic post-migration
// snapshot instead of racing the background helpers.
func DrainMigrationForTesting[K comparable, V comparable](m *Map[K, V]) {
	drainMigration(m, m.root.Load())
}

// TableChainDepthForTesting returns the number of tables in the chain
// that starts at m's root, the root itself included: 1 when no resize
// is in flight, plus one for each successor linked off the root.
func TableChainDepthForTesting[K comparable, V comparable](m *Map[K, V]) int {
	depth := 0
	for t := m.root.Load(); t != nil; t = t.newer.Load() {
		depth++
	}
	return depth
}

// CapacityForTesting returns the slot capacity of m's current root
// table.
func CapacityForTesting[K comparable, V comparable](m *Map[K, V]) int {
	return int(m.root.Load().capacity)
}
