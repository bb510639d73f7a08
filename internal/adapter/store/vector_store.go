package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"garage/internal/domain"
	"garage/internal/port"
)

const (
	// DefaultTopK is the result cap used when callers pass topK <= 0.
	DefaultTopK = 5
	// DefaultThreshold is the minimum similarity for a search hit.
	DefaultThreshold = 0.55
)

// VectorStore is an in-memory document index searched by brute-force cosine
// similarity. When a snapshot path is configured, batch mutations rewrite
// the whole collection to disk; durability is best effort and a write
// failure never invalidates the live index.
type VectorStore struct {
	mu           sync.RWMutex
	embedder     port.Embedder
	indexName    string
	snapshotPath string
	documents    map[string]record
}

type record struct {
	content   string
	embedding []float32
	metadata  map[string]any
}

// New creates a vector store. If snapshotPath names an existing snapshot it
// is loaded; a missing file means start empty and a corrupt one is logged
// and ignored.
func New(embedder port.Embedder, indexName, snapshotPath string) *VectorStore {
	if indexName == "" {
		indexName = "default"
	}

	s := &VectorStore{
		embedder:     embedder,
		indexName:    indexName,
		snapshotPath: snapshotPath,
		documents:    make(map[string]record),
	}

	if snapshotPath != "" {
		if err := s.Load(); err != nil {
			log.Warn("could not load vector store snapshot, starting empty",
				"path", snapshotPath, "err", err)
		}
	}

	return s
}

// AddDocument embeds and stores a single document, overwriting any existing
// record with the same id. The snapshot is intentionally not rewritten here;
// batch operations persist once for the whole batch.
func (s *VectorStore) AddDocument(ctx context.Context, doc domain.Document) error {
	vec, err := s.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("failed to embed document %s: %w", doc.ID, err)
	}

	s.mu.Lock()
	s.documents[doc.ID] = record{
		content:   doc.Content,
		embedding: vec,
		metadata:  doc.Metadata,
	}
	s.mu.Unlock()

	return nil
}

// AddDocuments embeds and inserts each document, then persists the snapshot
// once for the whole batch.
func (s *VectorStore) AddDocuments(ctx context.Context, docs []domain.Document) error {
	for _, doc := range docs {
		if err := s.AddDocument(ctx, doc); err != nil {
			return err
		}
	}
	s.persist()
	return nil
}

// Search embeds the query and ranks every stored document by cosine
// similarity, keeping hits at or above threshold, sorted descending, capped
// at topK. An empty store or no hit above threshold yields an empty slice,
// not an error. A document whose vector length differs from the query's
// surfaces ErrDimensionMismatch.
func (s *VectorStore) Search(ctx context.Context, query string, topK int, threshold float64) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(s.documents))
	for id, rec := range s.documents {
		score, err := Cosine(queryVec, rec.embedding)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		if score >= threshold {
			results = append(results, domain.SearchResult{
				ID:       id,
				Score:    score,
				Content:  rec.content,
				Metadata: rec.metadata,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// GetDocument returns the stored document by id.
func (s *VectorStore) GetDocument(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.documents[id]
	if !ok {
		return domain.Document{}, false
	}
	return domain.Document{ID: id, Content: rec.content, Metadata: rec.metadata}, true
}

// DeleteDocument removes a document by id and persists the snapshot when
// something was actually removed.
func (s *VectorStore) DeleteDocument(id string) bool {
	s.mu.Lock()
	_, ok := s.documents[id]
	delete(s.documents, id)
	s.mu.Unlock()

	if ok {
		s.persist()
	}
	return ok
}

// UpdateDocument re-embeds content from scratch, replaces the record, and
// persists the snapshot.
func (s *VectorStore) UpdateDocument(ctx context.Context, id, content string, metadata map[string]any) error {
	vec, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to embed document %s: %w", id, err)
	}

	s.mu.Lock()
	s.documents[id] = record{
		content:   content,
		embedding: vec,
		metadata:  metadata,
	}
	s.mu.Unlock()

	s.persist()
	return nil
}

// Clear empties the collection. An empty snapshot is a valid state, so the
// persist still runs.
func (s *VectorStore) Clear() {
	s.mu.Lock()
	s.documents = make(map[string]record)
	s.mu.Unlock()

	s.persist()
}

// Size returns the number of stored documents.
func (s *VectorStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// DocumentIDs returns the ids of all stored documents.
func (s *VectorStore) DocumentIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.documents))
	for id := range s.documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stats reports per-document content length and embedding dimensionality
// without exposing the raw vectors.
func (s *VectorStore) Stats() domain.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.StoreStats{
		IndexName:     s.indexName,
		DocumentCount: len(s.documents),
		Documents:     make([]domain.DocumentStat, 0, len(s.documents)),
	}
	for id, rec := range s.documents {
		stats.Documents = append(stats.Documents, domain.DocumentStat{
			ID:            id,
			ContentLength: len(rec.content),
			EmbeddingDims: len(rec.embedding),
			Metadata:      rec.metadata,
		})
	}
	sort.Slice(stats.Documents, func(i, j int) bool {
		return stats.Documents[i].ID < stats.Documents[j].ID
	})
	return stats
}

// persist writes the snapshot when configured, logging failures instead of
// returning them: the in-memory index stays authoritative.
func (s *VectorStore) persist() {
	if s.snapshotPath == "" {
		return
	}
	if err := s.Save(); err != nil {
		log.Warn("failed to save vector store snapshot",
			"path", s.snapshotPath, "err", err)
	}
}
