package chunker

import (
	"regexp"
	"strings"
)

const (
	// DefaultChunkSize is the target upper bound for one chunk, in bytes.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the window from which the overlap suffix is taken.
	DefaultChunkOverlap = 200

	// minOverlapRemainder is the minimum useful length for a boundary-based
	// overlap suffix; shorter remainders fall through to the word fallback.
	minOverlapRemainder = 20
	// overlapWords is the size of the trailing-word fallback overlap.
	overlapWords = 15
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Options configures a Splitter.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Splitter splits text into overlapping chunks. The zero configuration uses
// DefaultChunkSize / DefaultChunkOverlap.
type Splitter struct {
	size    int
	overlap int
}

// New creates a Splitter, applying defaults and clamping the overlap below
// the chunk size.
func New(optFns ...func(o *Options)) *Splitter {
	opts := Options{ChunkSize: DefaultChunkSize, ChunkOverlap: DefaultChunkOverlap}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = opts.ChunkSize / 5
	}
	return &Splitter{size: opts.ChunkSize, overlap: opts.ChunkOverlap}
}

// Split breaks text into chunks, each non-empty after trimming and targeting
// at most the configured chunk size. Empty input yields nil; the caller
// decides whether that is a "nothing to save" condition. Input already within
// the size limit is returned as a single trimmed chunk.
func (s *Splitter) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) <= s.size {
		return []string{trimmed}
	}

	paragraphs := splitParagraphs(trimmed)
	if len(paragraphs) <= 1 {
		// No paragraph structure to work with: fixed-stride slicing.
		return filterEmpty(s.slidingWindow(trimmed))
	}
	return filterEmpty(s.accumulate(paragraphs, "\n\n", true))
}

// accumulate packs parts (paragraphs or sentences) into chunks. When a part
// no longer fits, the open buffer is closed and the next one is seeded with
// an overlap suffix from the closed chunk. sentenceGrain controls whether an
// oversized part may be re-split one level finer.
func (s *Splitter) accumulate(parts []string, sep string, sentenceGrain bool) []string {
	var chunks []string
	var buf strings.Builder
	seedLen := 0

	closeBuf := func() {
		chunk := strings.TrimSpace(buf.String())
		buf.Reset()
		seedLen = 0
		if chunk == "" {
			return
		}
		chunks = append(chunks, chunk)
		if suffix := s.overlapSuffix(chunk); suffix != "" {
			buf.WriteString(suffix)
			seedLen = buf.Len()
		}
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if len(part) > s.size {
			// The part alone exceeds the chunk size. Close what we have, then
			// re-split it at the next finer grain.
			if buf.Len() > seedLen {
				closeBuf()
			}
			buf.Reset()
			seedLen = 0
			if sentenceGrain {
				if sentences := splitSentences(part); len(sentences) > 1 {
					chunks = append(chunks, s.accumulate(sentences, " ", false)...)
					continue
				}
			}
			chunks = append(chunks, s.slidingWindow(part)...)
			continue
		}

		if buf.Len() > 0 && buf.Len()+len(sep)+len(part) > s.size {
			if buf.Len() > seedLen {
				closeBuf()
			}
			// An overlap seed that still cannot host the part is dropped
			// rather than emitted as a chunk of its own.
			if buf.Len()+len(sep)+len(part) > s.size {
				buf.Reset()
				seedLen = 0
			}
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(part)
	}
	if buf.Len() > seedLen {
		closeBuf()
	}
	return chunks
}

// overlapSuffix picks the shared trailing context a closed chunk passes to
// its successor. Preference order: the remainder after the last
// sentence-terminal inside the overlap window, the remainder after the last
// line break, then the last few words.
func (s *Splitter) overlapSuffix(chunk string) string {
	if s.overlap <= 0 {
		return ""
	}
	window := chunk
	if len(chunk) > s.overlap {
		window = chunk[len(chunk)-s.overlap:]
	}
	if idx := strings.LastIndexAny(window, ".!?"); idx >= 0 {
		if rest := strings.TrimSpace(window[idx+1:]); len(rest) > minOverlapRemainder {
			return rest
		}
	}
	if idx := strings.LastIndexByte(window, '\n'); idx >= 0 {
		if rest := strings.TrimSpace(window[idx+1:]); len(rest) > minOverlapRemainder {
			return rest
		}
	}
	words := strings.Fields(chunk)
	if len(words) > overlapWords {
		words = words[len(words)-overlapWords:]
	}
	return strings.Join(words, " ")
}

// slidingWindow slices text into fixed windows with stride size-overlap.
func (s *Splitter) slidingWindow(text string) []string {
	stride := s.size - s.overlap
	if stride <= 0 {
		stride = s.size
	}
	var chunks []string
	for start := 0; start < len(text); start += stride {
		end := start + s.size
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}
		chunks = append(chunks, strings.TrimSpace(text[start:end]))
	}
	return chunks
}

// splitParagraphs splits on blank-line boundaries.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences splits at terminal punctuation followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && isSpace(text[i+1]) {
			if sentence := strings.TrimSpace(text[start : i+1]); sentence != "" {
				out = append(out, sentence)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

func filterEmpty(chunks []string) []string {
	out := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
