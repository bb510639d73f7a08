package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

type snapshot struct {
	IndexName string           `json:"indexName"`
	Documents []snapshotRecord `json:"documents"`
	Timestamp string           `json:"timestamp"`
}

type snapshotRecord struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float32      `json:"embedding"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Save serializes the whole collection to the snapshot file.
func (s *VectorStore) Save() error {
	if s.snapshotPath == "" {
		return nil
	}

	s.mu.RLock()
	snap := snapshot{
		IndexName: s.indexName,
		Documents: make([]snapshotRecord, 0, len(s.documents)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for id, rec := range s.documents {
		snap.Documents = append(snap.Documents, snapshotRecord{
			ID:        id,
			Content:   rec.content,
			Embedding: rec.embedding,
			Metadata:  rec.metadata,
		})
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Debug("vector store snapshot saved",
		"path", s.snapshotPath, "documents", len(snap.Documents))
	return nil
}

// Load replaces the in-memory collection with the snapshot contents. A
// missing file means an empty store, not an error. A parse failure returns
// the error before the collection is touched, so the store is left as-is.
// Records missing an id, content, or embedding are skipped rather than
// aborting the whole load.
func (s *VectorStore) Load() error {
	if s.snapshotPath == "" {
		return nil
	}

	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	docs := make(map[string]record, len(snap.Documents))
	for _, sr := range snap.Documents {
		if sr.ID == "" || sr.Content == "" || len(sr.Embedding) == 0 {
			log.Warn("skipping invalid snapshot record", "id", sr.ID)
			continue
		}
		docs[sr.ID] = record{
			content:   sr.Content,
			embedding: sr.Embedding,
			metadata:  sr.Metadata,
		}
	}

	s.mu.Lock()
	s.documents = docs
	s.mu.Unlock()

	log.Info("vector store loaded", "path", s.snapshotPath, "documents", len(docs))
	return nil
}
