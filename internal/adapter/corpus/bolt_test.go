package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/domain"
)

func openTestBolt(t *testing.T) *BoltSource {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBolt_PutGetDelete(t *testing.T) {
	s := openTestBolt(t)

	doc := domain.Document{
		ID:       "oil-1",
		Content:  "Oil change guidance",
		Metadata: map[string]any{"category": "maintenance"},
	}
	require.NoError(t, s.Put(doc))

	got, found, err := s.Get("oil-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, "maintenance", got.Metadata["category"])

	require.NoError(t, s.Delete("oil-1"))
	_, found, err = s.Get("oil-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBolt_PutRequiresID(t *testing.T) {
	s := openTestBolt(t)

	err := s.Put(domain.Document{Content: "no id"})
	assert.Error(t, err)
}

func TestBolt_PutAllAndList(t *testing.T) {
	s := openTestBolt(t)

	docs := []domain.Document{
		{ID: "a", Content: "first"},
		{ID: "b", Content: "second"},
		{ID: "c", Content: "third"},
	}
	require.NoError(t, s.PutAll(docs))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	listed, err := s.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestBolt_PutOverwrites(t *testing.T) {
	s := openTestBolt(t)

	require.NoError(t, s.Put(domain.Document{ID: "a", Content: "old"}))
	require.NoError(t, s.Put(domain.Document{ID: "a", Content: "new"}))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, _, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
}
