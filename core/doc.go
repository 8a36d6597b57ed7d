// Package core contains the shared data model of memmesh: the Chunk record
// stored for every remembered passage, the Snapshot holding a workspace's
// full persisted collection, and the scored result type produced by
// retrieval. Higher-level packages (chunker, dedup, retrieval, the façade)
// all exchange these types; core itself has no behavior beyond content
// normalization and hashing.
package core
