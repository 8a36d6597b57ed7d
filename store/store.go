package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/memmesh/memmesh/core"
	"github.com/memmesh/memmesh/logging"
)

const (
	dirName  = ".memmesh"
	fileName = "memory.json"
)

// Options configure a FileStore.
type Options struct {
	Logger logging.Logger
}

// FileStore reads and writes per-workspace memory snapshots.
type FileStore struct {
	logger logging.Logger
}

// New creates a FileStore. Logging defaults to NoOp.
func New(optFns ...func(o *Options)) *FileStore {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FileStore{logger: opts.Logger}
}

// Path returns the fixed location of the memory file under a workspace root.
func Path(root string) string {
	return filepath.Join(root, dirName, fileName)
}

// Load reads the snapshot for root. A missing file is logged at Debug and a
// present-but-corrupt file at Warn so the two cases stay distinguishable,
// but both return a fresh empty snapshot rather than an error.
func (s *FileStore) Load(root string) *core.Snapshot {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no memory file yet", "path", path)
		} else {
			s.logger.Warn("memory file unreadable, starting empty", "path", path, "error", err.Error())
		}
		return core.NewSnapshot()
	}
	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("memory file corrupt, starting empty", "path", path, "error", err.Error())
		return core.NewSnapshot()
	}
	if snap.Chunks == nil {
		snap.Chunks = []core.Chunk{}
	}
	if snap.Version == "" {
		snap.Version = core.SchemaVersion
	}
	return &snap
}

// Save persists the snapshot for root, creating the backing directory if
// absent, stamping LastUpdated and recomputing TotalChunks.
func (s *FileStore) Save(root string, snap *core.Snapshot) error {
	dir := filepath.Join(root, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}
	snap.Version = core.SchemaVersion
	snap.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	snap.TotalChunks = len(snap.Chunks)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory snapshot: %w", err)
	}
	path := Path(root)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write memory snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace memory snapshot: %w", err)
	}
	s.logger.Debug("memory snapshot saved", "path", path, "chunks", snap.TotalChunks)
	return nil
}
