// Package dedup suppresses duplicate saves. An exact match on the normalized
// content hash catches verbatim re-saves cheaply; an embedding similarity
// check catches reformatted or lightly edited re-saves a hash would miss.
// Duplicates are only suppressed within the same logical document scope —
// the same fact may legitimately recur across unrelated documents.
package dedup
