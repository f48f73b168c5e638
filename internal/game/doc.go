// Package game implements the authoritative per-table poker engine: seats
// and players, the betting rules, main and side pot computation, the hand
// lifecycle state machine, and the per-observer view sanitizer.
//
// A Table is owned by whoever holds its entry points; every mutation is
// serialized under the table's mutex, including timer callbacks, so the
// package's invariants never need to be reasoned about across
// interleavings. Outbound notifications happen through two callbacks the
// table is constructed with; they are invoked synchronously and must not
// call back into the table.
package game
