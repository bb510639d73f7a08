package domain

import "time"

// Document is a corpus record supplied by a document source. Metadata is
// carried through the index opaquely; only ID and Content are interpreted.
type Document struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchResult is one ranked hit from a similarity search.
type SearchResult struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Message is a single turn in a conversation window.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the cached state of one conversation.
type Session struct {
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// SessionStat summarizes one cached session without exposing message bodies.
type SessionStat struct {
	SessionID    string        `json:"sessionId"`
	MessageCount int           `json:"messageCount"`
	AccessCount  int           `json:"accessCount"`
	Age          time.Duration `json:"age"`
}

// DocumentStat summarizes one indexed document without exposing its vector.
type DocumentStat struct {
	ID            string         `json:"id"`
	ContentLength int            `json:"contentLength"`
	EmbeddingDims int            `json:"embeddingDims"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// StoreStats describes the current state of the vector store.
type StoreStats struct {
	IndexName     string         `json:"indexName"`
	DocumentCount int            `json:"documentCount"`
	Documents     []DocumentStat `json:"documents"`
}

// ReindexReport describes the outcome of a corpus rebuild.
type ReindexReport struct {
	DocumentsIndexed int           `json:"documentsIndexed"`
	IndexSize        int           `json:"indexSize"`
	Duration         time.Duration `json:"duration"`
}
