package memmesh

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memmesh/memmesh/tool"
)

func TestTools_Registration(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	tools := m.Tools()
	require.Len(t, tools, 4)

	names := make([]string, len(tools))
	for i, tl := range tools {
		names[i] = tl.Name()
		assert.NotEmpty(t, tl.Description())
		assert.NotNil(t, tl.Parameters())
	}
	assert.Equal(t, []string{"save_memory", "load_memory", "memory_stats", "clear_memory"}, names)
}

func TestTools_SaveLoadClearFlow(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)
	root := t.TempDir()
	ctx := context.Background()

	raw, err := m.SaveTool().Call(ctx, map[string]any{
		"root":    root,
		"content": factDeploy,
		"append":  true,
		"docId":   "runbook",
		"tags":    []any{"ops", "ci"},
	})
	require.NoError(t, err)
	saved, ok := raw.(SaveResult)
	require.True(t, ok, "unexpected result type %T", raw)
	assert.True(t, saved.Success, saved.Error)
	assert.Equal(t, 1, saved.SavedCount)

	raw, err = m.LoadTool().Call(ctx, map[string]any{
		"root":       root,
		"query":      queryDeploy,
		"maxResults": float64(3), // JSON numbers arrive as float64
	})
	require.NoError(t, err)
	loaded, ok := raw.(LoadResult)
	require.True(t, ok, "unexpected result type %T", raw)
	assert.True(t, loaded.Success, loaded.Error)
	assert.Contains(t, loaded.Content, factDeploy)

	raw, err = m.StatsTool().Call(ctx, map[string]any{"root": root})
	require.NoError(t, err)
	stats, ok := raw.(StatsResult)
	require.True(t, ok, "unexpected result type %T", raw)
	assert.Equal(t, 1, stats.TotalChunks)
	assert.Equal(t, 1, stats.Documents)

	raw, err = m.ClearTool().Call(ctx, map[string]any{"root": root})
	require.NoError(t, err)
	cleared, ok := raw.(map[string]any)
	require.True(t, ok, "unexpected result type %T", raw)
	assert.Equal(t, true, cleared["success"])

	assert.Equal(t, 0, m.Stats(root).TotalChunks)
}

func TestSaveTool_MissingContentFailsValidation(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	_, err = m.SaveTool().Call(context.Background(), map[string]any{"root": t.TempDir()})
	require.Error(t, err)

	var toolErr *tool.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestLoadTool_WrongTypeFailsValidation(t *testing.T) {
	m, err := New(newStubEmbedder())
	require.NoError(t, err)

	_, err = m.LoadTool().Call(context.Background(), map[string]any{
		"root":       t.TempDir(),
		"maxResults": "three",
	})
	require.Error(t, err)

	var toolErr *tool.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}
