package memmesh

import (
	"context"
	"fmt"
	"time"

	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/logging"
	"github.com/memmesh/memmesh/model"
	"github.com/memmesh/memmesh/retrieval"
)

// LoadRequest carries the inputs of a load operation.
type LoadRequest struct {
	// Root identifies the workspace whose store is read.
	Root string
	// Query selects memories by semantic similarity. Empty returns the most
	// recent chunks instead.
	Query string
	// MaxResults caps the returned chunk count (DefaultMaxResults if unset).
	MaxResults int
	// Synthesize asks the completion model to answer from the retrieved
	// context. Ignored when no Completer is configured.
	Synthesize bool
	// MinScore is the relevance floor for the highly-relevant tier
	// (DefaultMinScore if unset).
	MinScore float64
}

// LoadResult is the structured outcome of a load. An empty store or an
// off-topic query is a successful result with explanatory content, not an
// error; only input problems and query-embedding failures set Error.
type LoadResult struct {
	Success        bool               `json:"success"`
	Content        string             `json:"content"`
	RelevantChunks []core.ScoredChunk `json:"relevantChunks,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// LoadMemory retrieves stored context for a query. The query is embedded,
// candidates are ranked and bucketed into relevance tiers, the best
// non-empty tier passes through the semantic firewall, and the survivors are
// optionally handed to the completion model for synthesis. A synthesis
// failure degrades to returning the raw context; a query-embedding failure
// aborts the load.
func (m *Memory) LoadMemory(ctx context.Context, req LoadRequest) LoadResult {
	if err := validateRoot(req.Root); err != nil {
		return LoadResult{Error: err.Error()}
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	minScore := req.MinScore
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	snap := m.store.Load(req.Root)
	if len(snap.Chunks) == 0 {
		return LoadResult{Success: true, Content: "Memory is empty. Nothing has been saved yet."}
	}

	if req.Query == "" {
		recent := recentChunks(snap.Chunks, min(2*maxResults, len(snap.Chunks)))
		return LoadResult{Success: true, Content: joinChunks(recent), RelevantChunks: asScored(recent)}
	}

	start := time.Now()
	queryEmbedding, err := m.embedder.Embed(ctx, req.Query)
	logging.LogProviderCall(m.logger, m.embedder.Info().Provider, "embed", time.Since(start), err)
	if err != nil {
		return LoadResult{Error: fmt.Sprintf("query embedding failed: %v", err)}
	}

	// Cast a wide net at a very low floor; tiering decides what is actually
	// relevant, and the fallback narrative needs raw material either way.
	candidates := m.retrieval.Search(queryEmbedding, snap.Chunks, min(maxResults*4, candidateCap), candidateFloor)
	if len(candidates) == 0 {
		return m.fallbackToRecent(ctx, req, snap.Chunks, maxResults)
	}

	tiers := m.retrieval.CategorizeByRelevance(candidates, minScore)
	selected, tier := pickTier(tiers)
	if len(selected) == 0 {
		return m.fallbackToRecent(ctx, req, snap.Chunks, maxResults)
	}
	selected = m.retrieval.ApplySemanticFirewall(selected)
	if len(selected) > maxResults {
		selected = selected[:maxResults]
	}
	logging.LogRetrieval(m.logger, len(candidates), tier, tiers.MaxScore)

	contextText := joinScored(selected)
	if req.Synthesize && m.completer != nil {
		answer, err := m.synthesize(ctx, req.Query, contextText, tier, tiers.MaxScore)
		if err == nil {
			return LoadResult{Success: true, Content: answer, RelevantChunks: selected}
		}
		m.logger.Warn("synthesis failed, returning raw context", "error", err.Error())
		annotated := fmt.Sprintf("[%s relevance, top score %.2f]\n\n%s", tier, tiers.MaxScore, contextText)
		return LoadResult{Success: true, Content: annotated, RelevantChunks: selected}
	}
	return LoadResult{Success: true, Content: contextText, RelevantChunks: selected}
}

// fallbackToRecent handles the no-candidates path: return the most recent
// chunks, asking the model for any indirect connection when synthesis is on.
func (m *Memory) fallbackToRecent(ctx context.Context, req LoadRequest, chunks []core.Chunk, maxResults int) LoadResult {
	recent := recentChunks(chunks, maxResults)
	contextText := joinChunks(recent)

	if req.Synthesize && m.completer != nil {
		system := "The stored memories do not directly match the question. " +
			"Using the recent context below, point out any indirect connection to the question. " +
			"Be explicit that this is the best available context, not a direct match. " +
			"Never assert facts that are not present in the context.\n\nContext:\n" + contextText
		answer, err := m.complete(ctx, system, req.Query)
		if err == nil {
			return LoadResult{Success: true, Content: answer, RelevantChunks: asScored(recent)}
		}
		m.logger.Warn("fallback synthesis failed, returning raw context", "error", err.Error())
	}
	content := "No directly relevant memories found. Most recent context follows.\n\n" + contextText
	return LoadResult{Success: true, Content: content, RelevantChunks: asScored(recent)}
}

// synthesize builds the tier-aware system prompt and runs the completer.
func (m *Memory) synthesize(ctx context.Context, query, contextText, tier string, topScore float64) (string, error) {
	var guidance string
	switch tier {
	case retrieval.TierHigh:
		guidance = "The context is highly relevant. Answer the question directly from it."
	case retrieval.TierModerate:
		guidance = "The context is moderately relevant. Explain how it partially connects to the question."
	default:
		guidance = "The context is only somewhat relevant. Acknowledge the indirect connection before answering what you can."
	}
	system := fmt.Sprintf(
		"You are answering from stored memory context (relevance: %s, top score %.2f).\n%s\nNever assert facts that are not present in the given context.\n\nContext:\n%s",
		tier, topScore, guidance, contextText,
	)
	return m.complete(ctx, system, query)
}

func (m *Memory) complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	answer, err := m.completer.Complete(ctx, []model.Message{
		{Role: model.RoleSystem, Content: system},
		{Role: model.RoleUser, Content: user},
	})
	logging.LogProviderCall(m.logger, m.completer.Info().Provider, "complete", time.Since(start), err)
	return answer, err
}

// pickTier selects the best non-empty relevance tier, in preference order.
func pickTier(tiers retrieval.Tiers) ([]core.ScoredChunk, string) {
	switch {
	case len(tiers.HighlyRelevant) > 0:
		return tiers.HighlyRelevant, retrieval.TierHigh
	case len(tiers.ModeratelyRelevant) > 0:
		return tiers.ModeratelyRelevant, retrieval.TierModerate
	case len(tiers.SomewhatRelevant) > 0:
		return tiers.SomewhatRelevant, retrieval.TierSomewhat
	default:
		return nil, ""
	}
}

func asScored(chunks []core.Chunk) []core.ScoredChunk {
	out := make([]core.ScoredChunk, len(chunks))
	for i, c := range chunks {
		out[i] = core.ScoredChunk{Chunk: c}
	}
	return out
}

func joinScored(scored []core.ScoredChunk) string {
	chunks := make([]core.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.Chunk
	}
	return joinChunks(chunks)
}
