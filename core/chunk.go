package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Chunk is an immutable unit of stored memory. It is created once during a
// save operation (after deduplication passes) and never mutated in place;
// it disappears only when a later save clears or replaces its DocID group.
type Chunk struct {
	// ID is an opaque unique identifier, generated at creation, never reused.
	ID string `json:"id"`
	// Content is the remembered text, non-empty after trimming.
	Content string `json:"content"`
	// Embedding is the fixed-length vector produced by the embedding model.
	// Its length is assumed constant across a store; similarity math is
	// meaningless otherwise.
	Embedding []float64 `json:"embedding,omitempty"`
	// ContentHash is a short digest of the normalized content, used for
	// exact-duplicate short-circuiting. It is a pure function of Content.
	ContentHash string `json:"contentHash"`
	// Timestamp is the RFC 3339 creation time, used for recency ordering
	// when a load has no query.
	Timestamp string `json:"timestamp"`
	// Metadata is an open key/value mapping, passed through untouched.
	Metadata map[string]any `json:"metadata,omitempty"`
	// Tags are free-form labels, opaque to retrieval.
	Tags []string `json:"tags,omitempty"`
	// DocID groups chunks originating from one logical document. It drives
	// replace-on-resave and the semantic firewall's per-document cap.
	DocID string `json:"docId,omitempty"`
	// Source is a free-text provenance label.
	Source string `json:"source,omitempty"`
	// ChunkIndex / ChunkCount record the chunk's position within the split
	// that produced it.
	ChunkIndex int `json:"chunkIndex"`
	ChunkCount int `json:"chunkCount"`
	// EmbeddingModel names the model that produced Embedding. Recorded for
	// diagnosability; mismatched models in one store are not rejected.
	EmbeddingModel string `json:"embeddingModel,omitempty"`
}

// hashLen is the number of hex characters kept from the content digest.
const hashLen = 16

// NormalizeContent trims the text, collapses internal whitespace runs to
// single spaces and lowercases the result. Two passages that differ only in
// casing or whitespace normalize identically.
func NormalizeContent(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// HashContent returns the short hex digest of the normalized content.
// Chunks with identical normalized content always hash identically.
func HashContent(s string) string {
	sum := sha256.Sum256([]byte(NormalizeContent(s)))
	return hex.EncodeToString(sum[:])[:hashLen]
}
