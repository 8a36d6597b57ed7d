// Package store persists one memory snapshot per workspace root as a single
// JSON document. Loading never fails outward: "no memory yet" is a normal
// state, so a missing, unreadable or structurally invalid file loads as an
// empty snapshot. Writes go through a temp file and rename, which is atomic
// enough for the single-writer, single-process model; cross-process writers
// race with last-write-wins semantics.
package store
