package port

import (
	"context"

	"garage/internal/domain"
)

// DocumentSource supplies corpus documents for indexing.
type DocumentSource interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
