package dedup

import (
	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/vector"
)

// DefaultSimilarityThreshold marks two embeddings as near-duplicates.
const DefaultSimilarityThreshold = 0.95

// Options configure a Deduplicator.
type Options struct {
	// SimilarityThreshold is the cosine similarity at or above which two
	// chunks count as near-duplicates even with differing text.
	SimilarityThreshold float64
}

// Deduplicator decides whether a candidate chunk duplicates stored content.
type Deduplicator struct {
	threshold float64
}

// New creates a Deduplicator with the default near-duplicate threshold.
func New(optFns ...func(o *Options)) *Deduplicator {
	opts := Options{SimilarityThreshold: DefaultSimilarityThreshold}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Deduplicator{threshold: opts.SimilarityThreshold}
}

// IsDuplicate reports whether candidate duplicates any existing chunk in
// scope. Chunks whose DocID differs from scopeDocID are skipped when both
// sides carry one: cross-document duplication is allowed. In scope, an exact
// ContentHash match is an immediate duplicate; otherwise, if both sides carry
// embeddings, cosine similarity at or above the threshold counts too.
func (d *Deduplicator) IsDuplicate(candidate core.Chunk, existing []core.Chunk, scopeDocID string) bool {
	hash := candidate.ContentHash
	if hash == "" {
		hash = core.HashContent(candidate.Content)
	}
	for _, c := range existing {
		if scopeDocID != "" && c.DocID != "" && c.DocID != scopeDocID {
			continue
		}
		if c.ContentHash == hash {
			return true
		}
		if len(candidate.Embedding) == 0 || len(c.Embedding) == 0 {
			continue
		}
		sim, err := vector.CosineSimilarity(candidate.Embedding, c.Embedding)
		if err != nil {
			// Mismatched dimensions (mixed embedding models); treat as
			// incomparable rather than duplicate.
			continue
		}
		if sim >= d.threshold {
			return true
		}
	}
	return false
}
