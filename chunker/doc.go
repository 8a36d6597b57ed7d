// Package chunker splits raw text into overlapping, boundary-aware chunks
// sized for embedding. Paragraphs are accumulated up to the configured chunk
// size; each closed chunk seeds the next with an overlap suffix chosen at a
// sentence boundary, a line boundary, or a trailing word window, in that
// order. Oversized paragraphs are re-split at sentence grain and text without
// any paragraph structure falls back to fixed-stride slicing.
package chunker
