// Package vector provides the numeric primitives retrieval is built on:
// cosine similarity over fixed-length float vectors and a bounded min-heap
// selector that keeps the K highest-scoring items out of a larger candidate
// stream without sorting the whole stream.
package vector
