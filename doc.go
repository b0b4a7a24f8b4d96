// Package nbhm implements a lock-free, concurrently resizable hash
// map in the style of Cliff Click's non-blocking hash table: readers
// never block, writers never block, and a table resize proceeds
// incrementally with every goroutine that touches the map helping it
// along, rather than stopping the world.
//
// Keys are stored once and never moved within a table; deletion and
// migration both work by CASing in new, immutable slot values rather
// than mutating slots in place. A table that has started migrating to
// a larger successor is frozen for writes: every write either lands on
// the successor directly or first helps finish moving the slot it
// landed on.
package nbhm
