package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"garage/internal/adapter/store"
	"garage/internal/domain"
	"garage/internal/port"
)

// Reindexer rebuilds the vector store from a document source. The rebuild is
// clear-then-load: the previous index is discarded wholesale, never merged.
type Reindexer struct {
	store  *store.VectorStore
	source port.DocumentSource

	// Progress, when set, is called after each document is indexed.
	Progress func(done, total int)
}

// NewReindexer creates a reindex orchestrator.
func NewReindexer(st *store.VectorStore, source port.DocumentSource) *Reindexer {
	return &Reindexer{store: st, source: source}
}

// Reindex loads the corpus, clears the index, embeds and inserts every
// document, and persists the snapshot once at the end. An empty corpus is an
// error so a misconfigured source cannot silently wipe the index contents on
// disk and in memory without anyone noticing.
func (r *Reindexer) Reindex(ctx context.Context) (domain.ReindexReport, error) {
	start := time.Now()

	docs, err := r.source.ListDocuments(ctx)
	if err != nil {
		return domain.ReindexReport{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(docs) == 0 {
		return domain.ReindexReport{}, fmt.Errorf("no documents found to index")
	}

	r.store.Clear()

	for i, doc := range docs {
		if err := r.store.AddDocument(ctx, doc); err != nil {
			return domain.ReindexReport{}, err
		}
		if r.Progress != nil {
			r.Progress(i+1, len(docs))
		}
	}

	if err := r.store.Save(); err != nil {
		log.Warn("reindex completed but snapshot save failed", "err", err)
	}

	report := domain.ReindexReport{
		DocumentsIndexed: len(docs),
		IndexSize:        r.store.Size(),
		Duration:         time.Since(start),
	}

	log.Info("reindex complete",
		"documents", report.DocumentsIndexed, "duration", report.Duration)
	return report, nil
}
