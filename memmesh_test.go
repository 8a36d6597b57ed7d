package memmesh

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memmesh/memmesh/model"
)

// stubEmbedder maps exact texts to fixed vectors so similarity outcomes are
// known ahead of time. Unknown texts embed to the zero vector, which scores
// zero against everything.
type stubEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i], _ = s.Embed(ctx, t)
	}
	return out, nil
}

func (s *stubEmbedder) Info() model.Info {
	return model.Info{Name: "stub", Provider: "test", Dimensions: 3}
}

const (
	factDeploy  = "The deploy pipeline runs nightly after the integration suite passes."
	factOncall  = "The on-call rotation hands over every Monday at nine."
	queryDeploy = "When does the deploy pipeline run?"
)

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float64{
		factDeploy:  {1, 0, 0},
		factOncall:  {0, 1, 0},
		queryDeploy: {0.95, 0.05, 0}, // near factDeploy, far from factOncall
	}}
}

func TestNew_RequiresEmbedder(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()

	saved := m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy})
	require.True(t, saved.Success, saved.Error)
	assert.Equal(t, 1, saved.SavedCount)

	loaded := m.LoadMemory(context.Background(), LoadRequest{Root: root, Query: queryDeploy})
	require.True(t, loaded.Success, loaded.Error)
	assert.Contains(t, loaded.Content, factDeploy)
	require.NotEmpty(t, loaded.RelevantChunks)
	assert.Greater(t, loaded.RelevantChunks[0].Score, 0.9)
}

func TestSaveMemory_SkipsDuplicates(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()

	first := m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy, Append: true})
	require.True(t, first.Success)

	second := m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy, Append: true})
	require.True(t, second.Success)
	assert.Equal(t, 0, second.SavedCount)
	assert.Equal(t, 1, second.SkippedCount)

	stats := m.Stats(root)
	assert.Equal(t, 1, stats.TotalChunks)
}

func TestSaveMemory_ReplaceByDocID(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()
	ctx := context.Background()

	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factDeploy, DocID: "runbook", Append: true}).Success)
	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factOncall, DocID: "rotation", Append: true}).Success)

	// Replacing one document must not disturb the other.
	replacement := "The deploy pipeline now runs twice a day."
	res := m.SaveMemory(ctx, SaveRequest{Root: root, Content: replacement, DocID: "runbook"})
	require.True(t, res.Success, res.Error)

	stats := m.Stats(root)
	assert.Equal(t, 2, stats.TotalChunks)
	assert.Equal(t, 2, stats.Documents)

	loaded := m.LoadMemory(ctx, LoadRequest{Root: root})
	assert.NotContains(t, loaded.Content, factDeploy)
	assert.Contains(t, loaded.Content, replacement)
	assert.Contains(t, loaded.Content, factOncall)
}

func TestSaveMemory_Validation(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	res := m.SaveMemory(context.Background(), SaveRequest{Root: "", Content: "x"})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	res = m.SaveMemory(context.Background(), SaveRequest{Root: t.TempDir(), Content: "   "})
	assert.False(t, res.Success)
	assert.Equal(t, "no content to save", res.Error)
}

func TestSaveMemory_EmbeddingFailureAborts(t *testing.T) {
	emb := newStubEmbedder()
	m, err := New(emb)
	require.NoError(t, err)
	root := t.TempDir()

	emb.err = errors.New("provider down")
	res := m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "embedding failed")

	// Nothing may be persisted after an aborted save.
	emb.err = nil
	stats := m.Stats(root)
	assert.Equal(t, 0, stats.TotalChunks)
}

func TestLoadMemory_EmptyStore(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	res := m.LoadMemory(context.Background(), LoadRequest{Root: t.TempDir(), Query: queryDeploy})
	require.True(t, res.Success)
	assert.Contains(t, res.Content, "Memory is empty")
}

func TestLoadMemory_NoQueryReturnsRecent(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()
	ctx := context.Background()

	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factDeploy, Append: true}).Success)
	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factOncall, Append: true}).Success)

	res := m.LoadMemory(ctx, LoadRequest{Root: root})
	require.True(t, res.Success)
	assert.Contains(t, res.Content, factDeploy)
	assert.Contains(t, res.Content, factOncall)
	assert.Len(t, res.RelevantChunks, 2)
}

func TestLoadMemory_OffTopicFallsBackToRecent(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()
	ctx := context.Background()

	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factDeploy}).Success)

	// Unknown query embeds to the zero vector: no candidate clears the floor.
	res := m.LoadMemory(ctx, LoadRequest{Root: root, Query: "how do I poach an egg"})
	require.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Content, "No directly relevant memories found."), res.Content)
	assert.Contains(t, res.Content, factDeploy)
}

func TestLoadMemory_QueryEmbeddingFailureAborts(t *testing.T) {
	emb := newStubEmbedder()
	m, err := New(emb)
	require.NoError(t, err)
	root := t.TempDir()

	require.True(t, m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy}).Success)

	emb.err = errors.New("provider down")
	res := m.LoadMemory(context.Background(), LoadRequest{Root: root, Query: queryDeploy})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "query embedding failed")
}

func TestLoadMemory_Synthesis(t *testing.T) {
	completer := model.NewMockCompleter()
	completer.AddResponse(queryDeploy, "Nightly, after the integration suite.")
	m, err := New(newStubEmbedder(), func(o *Options) { o.Completer = completer })
	require.NoError(t, err)
	root := t.TempDir()

	require.True(t, m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy}).Success)

	res := m.LoadMemory(context.Background(), LoadRequest{Root: root, Query: queryDeploy, Synthesize: true})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Nightly, after the integration suite.", res.Content)
	assert.NotEmpty(t, res.RelevantChunks)
}

func TestLoadMemory_SynthesisFailureDegradesToRawContext(t *testing.T) {
	completer := model.NewMockCompleter()
	completer.FailWith(errors.New("model overloaded"))
	m, err := New(newStubEmbedder(), func(o *Options) { o.Completer = completer })
	require.NoError(t, err)
	root := t.TempDir()

	require.True(t, m.SaveMemory(context.Background(), SaveRequest{Root: root, Content: factDeploy}).Success)

	res := m.LoadMemory(context.Background(), LoadRequest{Root: root, Query: queryDeploy, Synthesize: true})
	require.True(t, res.Success, res.Error)
	assert.True(t, strings.HasPrefix(res.Content, "[high relevance"), res.Content)
	assert.Contains(t, res.Content, factDeploy)
}

func TestStatsAndClear(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()
	ctx := context.Background()

	require.True(t, m.SaveMemory(ctx, SaveRequest{Root: root, Content: factDeploy, DocID: "runbook", Append: true}).Success)

	stats := m.Stats(root)
	require.True(t, stats.Success)
	assert.Equal(t, 1, stats.TotalChunks)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, map[string]int{"stub": 1}, stats.ModelCounts)
	assert.NotEmpty(t, stats.LastUpdated)

	require.NoError(t, m.Clear(root))
	stats = m.Stats(root)
	assert.Equal(t, 0, stats.TotalChunks)
	assert.Empty(t, stats.ModelCounts)
}

func TestStats_EmptyWorkspace(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	stats := m.Stats(t.TempDir())
	require.True(t, stats.Success)
	assert.Equal(t, 0, stats.TotalChunks)
}
