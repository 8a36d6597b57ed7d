package core

// ScoredChunk pairs a stored chunk with its similarity score against a query
// embedding.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
