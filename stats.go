package memmesh

// StatsResult summarizes a workspace's store without loading embeddings into
// the caller's hands.
type StatsResult struct {
	Success     bool   `json:"success"`
	TotalChunks int    `json:"totalChunks"`
	Documents   int    `json:"documents"`
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	// ModelCounts maps embedding model names to chunk counts. More than one
	// key means the store mixes embedding models and similarity scores
	// across those groups are not comparable.
	ModelCounts map[string]int `json:"modelCounts,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Stats reports the size and composition of a workspace's store. An empty or
// missing store is a successful zero-count result.
func (m *Memory) Stats(root string) StatsResult {
	if err := validateRoot(root); err != nil {
		return StatsResult{Error: err.Error()}
	}
	snap := m.store.Load(root)
	docs := make(map[string]struct{})
	models := make(map[string]int)
	for _, c := range snap.Chunks {
		if c.DocID != "" {
			docs[c.DocID] = struct{}{}
		}
		if c.EmbeddingModel != "" {
			models[c.EmbeddingModel]++
		}
	}
	res := StatsResult{
		Success:     true,
		TotalChunks: len(snap.Chunks),
		Documents:   len(docs),
		Version:     snap.Version,
		LastUpdated: snap.LastUpdated,
	}
	if len(models) > 0 {
		res.ModelCounts = models
	}
	return res
}

// Clear removes every chunk from the workspace's store.
func (m *Memory) Clear(root string) error {
	if err := validateRoot(root); err != nil {
		return err
	}
	snap := m.store.Load(root)
	snap.Chunks = snap.Chunks[:0]
	if err := m.store.Save(root, snap); err != nil {
		return err
	}
	m.logger.Info("memory cleared", "root", root)
	return nil
}
