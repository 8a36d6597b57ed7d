package memmesh

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/logging"
)

// SaveRequest carries the inputs of a save operation.
type SaveRequest struct {
	// Root identifies the workspace whose store is written.
	Root string
	// Content is the raw text to remember.
	Content string
	// Append keeps existing chunks. When false, a DocID save replaces only
	// that document's chunks and a save without DocID clears the store.
	Append bool
	// Metadata, Tags, DocID and Source are stored on every resulting chunk.
	Metadata map[string]any
	Tags     []string
	DocID    string
	Source   string
}

// SaveResult is the structured outcome of a save. Error is set (and Success
// false) for both input problems and provider failures; a save never panics
// or leaks a raw error to tool callers.
type SaveResult struct {
	Success      bool   `json:"success"`
	SavedCount   int    `json:"savedCount"`
	SkippedCount int    `json:"skippedCount"`
	Error        string `json:"error,omitempty"`
}

// SaveMemory chunks the content, embeds all chunks in one batched provider
// call, drops duplicates against the (possibly replaced) store scoped by
// DocID, and persists the survivors. Embedding failures abort the whole save;
// no partial chunk set is ever persisted.
func (m *Memory) SaveMemory(ctx context.Context, req SaveRequest) SaveResult {
	if err := validateRoot(req.Root); err != nil {
		return SaveResult{Error: err.Error()}
	}

	snap := m.store.Load(req.Root)
	if !req.Append {
		if req.DocID != "" {
			snap.Chunks = removeDocChunks(snap.Chunks, req.DocID)
		} else {
			snap.Chunks = snap.Chunks[:0]
		}
	}

	pieces := m.splitter.Split(req.Content)
	if len(pieces) == 0 {
		return SaveResult{Error: "no content to save"}
	}

	start := time.Now()
	embeddings, err := m.embedder.EmbedBatch(ctx, pieces)
	logging.LogProviderCall(m.logger, m.embedder.Info().Provider, "embed_batch", time.Since(start), err)
	if err != nil {
		return SaveResult{Error: fmt.Sprintf("embedding failed: %v", err)}
	}
	if len(embeddings) != len(pieces) {
		return SaveResult{Error: fmt.Sprintf("embedding count mismatch: %d texts, %d vectors", len(pieces), len(embeddings))}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	embeddingModel := m.embedder.Info().Name
	saved, skipped := 0, 0
	for i, content := range pieces {
		candidate := core.Chunk{
			Content:     content,
			Embedding:   embeddings[i],
			ContentHash: core.HashContent(content),
		}
		if m.dedup.IsDuplicate(candidate, snap.Chunks, req.DocID) {
			skipped++
			continue
		}
		candidate.ID = uuid.NewString()
		candidate.Timestamp = now
		candidate.Metadata = req.Metadata
		candidate.Tags = req.Tags
		candidate.DocID = req.DocID
		candidate.Source = req.Source
		candidate.ChunkIndex = i
		candidate.ChunkCount = len(pieces)
		candidate.EmbeddingModel = embeddingModel
		snap.Chunks = append(snap.Chunks, candidate)
		saved++
	}

	if err := m.store.Save(req.Root, snap); err != nil {
		return SaveResult{Error: fmt.Sprintf("persist failed: %v", err)}
	}
	m.logger.Info("memory saved", "root", req.Root, "saved", saved, "skipped", skipped, "doc_id", req.DocID)
	return SaveResult{Success: true, SavedCount: saved, SkippedCount: skipped}
}

// removeDocChunks drops every chunk belonging to docID, preserving order.
func removeDocChunks(chunks []core.Chunk, docID string) []core.Chunk {
	out := chunks[:0]
	for _, c := range chunks {
		if c.DocID != docID {
			out = append(out, c)
		}
	}
	return out
}
