package memmesh

import (
	"context"

	"github.com/memmesh/memmesh/tool"
)

// Tools returns the full memory tool set bound to m, ready for registration
// with an assistant frontend.
func (m *Memory) Tools() []tool.Tool {
	return []tool.Tool{m.SaveTool(), m.LoadTool(), m.StatsTool(), m.ClearTool()}
}

// SaveTool exposes SaveMemory as a schema-validated tool.
func (m *Memory) SaveTool() tool.Tool {
	return tool.NewFunctionTool(
		"save_memory",
		"Save text to the workspace's long-term memory so it can be recalled later by meaning.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"root":     map[string]any{"type": "string", "description": "Workspace root directory"},
				"content":  map[string]any{"type": "string", "description": "Text to remember"},
				"append":   map[string]any{"type": "boolean", "description": "Keep existing memories instead of replacing"},
				"metadata": map[string]any{"type": "object", "description": "Opaque key/value metadata stored with each chunk"},
				"tags":     map[string]any{"type": "array", "description": "Labels stored with each chunk"},
				"docId":    map[string]any{"type": "string", "description": "Logical document this content belongs to"},
				"source":   map[string]any{"type": "string", "description": "Free-text provenance label"},
			},
			"required": []string{"root", "content"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			req := SaveRequest{
				Root:    stringArg(args, "root"),
				Content: stringArg(args, "content"),
				Append:  boolArg(args, "append"),
				DocID:   stringArg(args, "docId"),
				Source:  stringArg(args, "source"),
				Tags:    stringSliceArg(args, "tags"),
			}
			if md, ok := args["metadata"].(map[string]any); ok {
				req.Metadata = md
			}
			return m.SaveMemory(ctx, req), nil
		},
		func(o *tool.Options) { o.Logger = m.logger },
	)
}

// LoadTool exposes LoadMemory as a schema-validated tool.
func (m *Memory) LoadTool() tool.Tool {
	return tool.NewFunctionTool(
		"load_memory",
		"Recall stored memories relevant to a query, optionally synthesizing an answer from them.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"root":       map[string]any{"type": "string", "description": "Workspace root directory"},
				"query":      map[string]any{"type": "string", "description": "What to recall; empty returns the most recent memories"},
				"maxResults": map[string]any{"type": "integer", "description": "Maximum chunks to return"},
				"synthesize": map[string]any{"type": "boolean", "description": "Ask the completion model to answer from the context"},
				"minScore":   map[string]any{"type": "number", "description": "Relevance floor for the top tier"},
			},
			"required": []string{"root"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			req := LoadRequest{
				Root:       stringArg(args, "root"),
				Query:      stringArg(args, "query"),
				MaxResults: intArg(args, "maxResults"),
				Synthesize: boolArg(args, "synthesize"),
				MinScore:   floatArg(args, "minScore"),
			}
			return m.LoadMemory(ctx, req), nil
		},
		func(o *tool.Options) { o.Logger = m.logger },
	)
}

// StatsTool exposes Stats as a tool.
func (m *Memory) StatsTool() tool.Tool {
	return tool.NewFunctionTool(
		"memory_stats",
		"Report how many memories a workspace holds and which embedding models produced them.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"root": map[string]any{"type": "string", "description": "Workspace root directory"},
			},
			"required": []string{"root"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return m.Stats(stringArg(args, "root")), nil
		},
		func(o *tool.Options) { o.Logger = m.logger },
	)
}

// ClearTool exposes Clear as a tool.
func (m *Memory) ClearTool() tool.Tool {
	return tool.NewFunctionTool(
		"clear_memory",
		"Delete every memory stored for a workspace.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"root": map[string]any{"type": "string", "description": "Workspace root directory"},
			},
			"required": []string{"root"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			if err := m.Clear(stringArg(args, "root")); err != nil {
				return map[string]any{"success": false, "error": err.Error()}, nil
			}
			return map[string]any{"success": true}, nil
		},
		func(o *tool.Options) { o.Logger = m.logger },
	)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
