package retrieval

import (
	"math"
	"sort"

	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/logging"
	"github.com/memmesh/memmesh/vector"
)

// firewallDocCap is the maximum number of chunks one document may place in a
// result set.
const firewallDocCap = 3

// Tier labels for a categorized result set.
const (
	TierHigh     = "high"
	TierModerate = "moderate"
	TierSomewhat = "somewhat"
)

// Tiers buckets scored chunks relative to the best score in the candidate
// set. A single hard threshold either returns nothing for loosely-related
// stores or floods results for tightly-clustered ones; bucketing relative to
// the maximum adapts to each query's own score distribution.
type Tiers struct {
	HighlyRelevant     []core.ScoredChunk
	ModeratelyRelevant []core.ScoredChunk
	SomewhatRelevant   []core.ScoredChunk
	MaxScore           float64
}

// Options configure a Service.
type Options struct {
	Logger logging.Logger
}

// Service performs similarity search and result selection over a chunk set.
type Service struct {
	logger logging.Logger
}

// New creates a retrieval Service. Logging defaults to NoOp.
func New(optFns ...func(o *Options)) *Service {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{logger: opts.Logger}
}

// Search scores every chunk's stored embedding against queryEmbedding and
// returns up to maxResults chunks with score >= minScore, best first. The
// bounded heap enforces maxResults; sub-threshold candidates are filtered
// before insertion so they never occupy heap slots. Chunks without an
// embedding, or whose embedding length does not match the query, are skipped.
func (s *Service) Search(queryEmbedding []float64, chunks []core.Chunk, maxResults int, minScore float64) []core.ScoredChunk {
	if maxResults <= 0 || len(chunks) == 0 {
		return nil
	}
	top := vector.NewTopK(maxResults, func(a, b core.ScoredChunk) bool {
		return a.Score < b.Score
	})
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			continue
		}
		score, err := vector.CosineSimilarity(queryEmbedding, c.Embedding)
		if err != nil {
			// Mixed embedding dimensions; skip rather than fail the query.
			s.logger.Warn("skipping chunk with mismatched embedding", "chunk_id", c.ID, "error", err.Error())
			continue
		}
		if score < minScore {
			continue
		}
		top.Push(core.ScoredChunk{Chunk: c, Score: score})
	}
	return top.Results()
}

// CategorizeByRelevance buckets scored chunks relative to the top score M:
// highly relevant at score >= max(minScore, 0.7*M), moderately relevant down
// to max(0.15, 0.4*M), somewhat relevant down to 0.05. Anything below falls
// out entirely.
func (s *Service) CategorizeByRelevance(scored []core.ScoredChunk, minScore float64) Tiers {
	if len(scored) == 0 {
		return Tiers{}
	}
	maxScore := scored[0].Score
	for _, sc := range scored[1:] {
		if sc.Score > maxScore {
			maxScore = sc.Score
		}
	}
	highFloor := math.Max(minScore, 0.7*maxScore)
	moderateFloor := math.Max(0.15, 0.4*maxScore)

	tiers := Tiers{MaxScore: maxScore}
	for _, sc := range scored {
		switch {
		case sc.Score >= highFloor:
			tiers.HighlyRelevant = append(tiers.HighlyRelevant, sc)
		case sc.Score >= moderateFloor:
			tiers.ModeratelyRelevant = append(tiers.ModeratelyRelevant, sc)
		case sc.Score >= 0.05:
			tiers.SomewhatRelevant = append(tiers.SomewhatRelevant, sc)
		}
	}
	return tiers
}

// ApplySemanticFirewall caps each document's contribution to the result set.
// Chunks are grouped by DocID; chunks without one pass through untouched.
// Within a group only the top scoring chunks survive, then groups and
// orphans are recombined and re-sorted by score descending.
func (s *Service) ApplySemanticFirewall(scored []core.ScoredChunk) []core.ScoredChunk {
	groups := make(map[string][]core.ScoredChunk)
	var out []core.ScoredChunk
	for _, sc := range scored {
		if sc.Chunk.DocID == "" {
			out = append(out, sc)
			continue
		}
		groups[sc.Chunk.DocID] = append(groups[sc.Chunk.DocID], sc)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].Score > group[j].Score })
		if len(group) > firewallDocCap {
			s.logger.Debug("semantic firewall capped document", "doc_id", group[0].Chunk.DocID, "dropped", len(group)-firewallDocCap)
			group = group[:firewallDocCap]
		}
		out = append(out, group...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// DynamicThreshold derives a cutoff from how confident the best match is:
// max(minScore, 0.8 * top score) clamped to [0.2, 0.7]. scores must be in
// descending order. This is the alternate, single-threshold selection policy;
// the load flow uses tiering as the operative path.
func DynamicThreshold(scores []float64, minScore float64) float64 {
	threshold := minScore
	if len(scores) > 0 {
		threshold = math.Max(minScore, 0.8*scores[0])
	}
	return math.Min(math.Max(threshold, 0.2), 0.7)
}
