package core

// SchemaVersion is stamped into every persisted snapshot.
const SchemaVersion = "1.0"

// Snapshot is the full persisted collection for one workspace. Chunk order
// is insertion order; it carries no meaning beyond the recency fallback.
type Snapshot struct {
	Chunks []Chunk `json:"chunks"`
	// Version is the schema version the snapshot was written with.
	Version string `json:"version"`
	// LastUpdated is stamped on every successful save.
	LastUpdated string `json:"lastUpdated"`
	// TotalChunks is a cached count, recomputed on every save.
	TotalChunks int `json:"totalChunks"`
}

// NewSnapshot returns an empty snapshot at the current schema version.
// A missing or unreadable store file loads as this.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Chunks:  []Chunk{},
		Version: SchemaVersion,
	}
}
