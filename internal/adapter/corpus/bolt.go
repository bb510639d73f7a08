package corpus

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"garage/internal/domain"
)

var bucketDocuments = []byte("documents")

// BoltSource keeps the ingested corpus in a BoltDB file so reindexing does
// not depend on the original JSON files still being around.
type BoltSource struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) a corpus database at the given path.
func OpenBolt(path string) (*BoltSource, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents bucket: %w", err)
	}

	return &BoltSource{db: db}, nil
}

// Put stores or replaces one document.
func (s *BoltSource) Put(doc domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(doc.ID), data)
	})
}

// PutAll stores a batch of documents in a single transaction.
func (s *BoltSource) PutAll(docs []domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		for _, doc := range docs {
			if doc.ID == "" {
				return fmt.Errorf("document id is required")
			}
			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(doc.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns one document by id.
func (s *BoltSource) Get(id string) (domain.Document, bool, error) {
	var doc domain.Document
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(id))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		found = true
		return nil
	})

	return doc, found, err
}

// Delete removes one document by id.
func (s *BoltSource) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(id))
	})
}

// ListDocuments returns every stored document.
func (s *BoltSource) ListDocuments(_ context.Context) ([]domain.Document, error) {
	var docs []domain.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return nil // Skip corrupted entries
			}
			docs = append(docs, doc)
			return nil
		})
	})

	return docs, err
}

// Count returns the number of stored documents.
func (s *BoltSource) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketDocuments).Stats().KeyN
		return nil
	})
	return count, err
}

// Close releases the underlying database.
func (s *BoltSource) Close() error {
	return s.db.Close()
}
