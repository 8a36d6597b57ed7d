// Package memmesh provides a local semantic memory for AI assistant tools:
// it persists text as searchable chunks under a workspace root, retrieves
// them by embedding similarity and can synthesize an answer from the
// retrieved context via a completion model. Most applications interact with
// the package by:
//  1. Creating a Memory via New() with an Embedder (and optionally a
//     Completer for synthesis)
//  2. Calling SaveMemory / LoadMemory with request structs, or exposing the
//     same operations to an assistant through Tools()
//
// The façade coordinates the chunker, deduplicator, file store and retrieval
// service; each can be overridden for tests or tuning. All state lives in a
// single JSON file per workspace; one Memory instance per workspace is
// assumed and concurrent saves are not serialized internally.
package memmesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/memmesh/memmesh/chunker"
	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/dedup"
	"github.com/memmesh/memmesh/logging"
	"github.com/memmesh/memmesh/model"
	"github.com/memmesh/memmesh/retrieval"
	"github.com/memmesh/memmesh/store"
)

// Default load parameters applied when a request leaves them unset.
const (
	DefaultMaxResults = 5
	DefaultMinScore   = 0.3

	// candidateFloor is the deliberately low score floor used for the
	// initial search, so something is always available for the fallback
	// narrative even when nothing is strongly relevant.
	candidateFloor = 0.05
	// candidateCap bounds how many raw candidates a search may return.
	candidateCap = 20
)

// Options configure a Memory instance. Any unset collaborator is replaced by
// a default implementation.
type Options struct {
	// Completer enables answer synthesis during load. Without one, loads
	// always return raw context.
	Completer model.Completer
	// Store owns snapshot persistence.
	Store *store.FileStore
	// Splitter chunks incoming content.
	Splitter *chunker.Splitter
	// Dedup suppresses duplicate chunks on save.
	Dedup *dedup.Deduplicator
	// Retrieval ranks and selects chunks on load.
	Retrieval *retrieval.Service
	// Logger receives structured pipeline logs. Defaults to NoOp.
	Logger logging.Logger
}

// Memory is the orchestrator façade over the memory pipeline.
type Memory struct {
	embedder  model.Embedder
	completer model.Completer
	store     *store.FileStore
	splitter  *chunker.Splitter
	dedup     *dedup.Deduplicator
	retrieval *retrieval.Service
	logger    logging.Logger
}

// New creates a Memory backed by the given embedder. The embedder is the one
// mandatory collaborator; everything else defaults.
func New(embedder model.Embedder, optFns ...func(o *Options)) (*Memory, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = store.New(func(o *store.Options) { o.Logger = opts.Logger })
	}
	if opts.Splitter == nil {
		opts.Splitter = chunker.New()
	}
	if opts.Dedup == nil {
		opts.Dedup = dedup.New()
	}
	if opts.Retrieval == nil {
		opts.Retrieval = retrieval.New(func(o *retrieval.Options) { o.Logger = opts.Logger })
	}
	return &Memory{
		embedder:  embedder,
		completer: opts.Completer,
		store:     opts.Store,
		splitter:  opts.Splitter,
		dedup:     opts.Dedup,
		retrieval: opts.Retrieval,
		logger:    opts.Logger,
	}, nil
}

// validateRoot rejects unusable workspace identifiers before any disk access.
func validateRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return fmt.Errorf("workspace root is required")
	}
	if strings.ContainsRune(root, 0) {
		return fmt.Errorf("workspace root contains invalid characters")
	}
	return nil
}

// recentChunks returns up to limit chunks sorted by timestamp descending.
func recentChunks(chunks []core.Chunk, limit int) []core.Chunk {
	out := make([]core.Chunk, len(chunks))
	copy(out, chunks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// joinChunks concatenates chunk contents for use as model context.
func joinChunks(chunks []core.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n---\n\n")
}
