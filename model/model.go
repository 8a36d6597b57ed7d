package model

import (
	"context"
	"fmt"
)

// Message roles. The orchestrator sends at most one system turn followed by
// one user turn.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged turn sent to a Completer.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
	// Dimensions is the embedding vector length; zero for completion models.
	Dimensions int `json:"dimensions,omitempty"`
}

// Embedder produces embedding vectors for text. EmbedBatch is
// order-preserving and returns exactly one vector per input; the orchestrator
// relies on that to embed all chunks of a save in a single call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Info returns information about the embedding model.
	Info() Info
}

// Completer synthesizes a text answer from an ordered message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)

	// Info returns information about the completion model.
	Info() Info
}

// UserText extracts the content of the last user message, for logging and
// mock lookups.
func UserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// ErrNoMessages is returned by completers invoked without any messages.
var ErrNoMessages = fmt.Errorf("no messages provided")
