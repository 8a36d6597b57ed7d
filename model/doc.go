// Package model defines the external provider contracts the memory
// orchestrator consumes: an Embedder that turns text into fixed-length
// vectors and a Completer that synthesizes an answer from role-tagged
// messages. Concrete adapters live in the openai and anthropic subpackages;
// deterministic mocks for tests and examples live here.
package model
