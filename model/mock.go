package model

import (
	"context"
	"hash/fnv"
	"strings"
)

// MockEmbedder is a deterministic in-memory Embedder for tests and examples.
// It hashes whitespace-delimited tokens into a fixed-dimension bag-of-words
// vector, so identical text embeds identically and texts sharing vocabulary
// score a positive cosine similarity.
type MockEmbedder struct {
	dim int
	err error
}

// NewMockEmbedder constructs a MockEmbedder with the given dimensionality.
func NewMockEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = 64
	}
	return &MockEmbedder{dim: dim}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MockEmbedder) FailWith(err error) { m.err = err }

// Embed implements Embedder.
func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.embed(text), nil
}

// EmbedBatch implements Embedder.
func (m *MockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = m.embed(t)
	}
	return out, nil
}

// Info implements Embedder.
func (m *MockEmbedder) Info() Info {
	return Info{Name: "mock-embedder", Provider: "mock", Dimensions: m.dim}
}

func (m *MockEmbedder) embed(text string) []float64 {
	vec := make([]float64, m.dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if tok == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%m.dim]++
	}
	return vec
}

// MockCompleter is a canned-response Completer. Unregistered prompts echo
// back; FailWith injects provider failures for degradation tests.
type MockCompleter struct {
	responses map[string]string
	err       error
}

// NewMockCompleter constructs an empty MockCompleter.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{responses: make(map[string]string)}
}

// AddResponse registers a deterministic completion for a user prompt.
func (m *MockCompleter) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MockCompleter) FailWith(err error) { m.err = err }

// Complete implements Completer.
func (m *MockCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if len(messages) == 0 {
		return "", ErrNoMessages
	}
	prompt := UserText(messages)
	if resp, ok := m.responses[prompt]; ok {
		return resp, nil
	}
	return "Mock response to: " + prompt, nil
}

// Info implements Completer.
func (m *MockCompleter) Info() Info {
	return Info{Name: "mock-completer", Provider: "mock"}
}
