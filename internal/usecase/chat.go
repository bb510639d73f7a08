package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"garage/internal/adapter/session"
	"garage/internal/adapter/store"
	"garage/internal/domain"
	"garage/internal/port"
)

// Chat drives the retrieval-augmented conversation flow: rate limiting,
// session window management, context retrieval, and reply generation.
type Chat struct {
	store     *store.VectorStore
	sessions  *session.Cache
	generator port.Generator // nil means canned replies only
	topK      int
	threshold float64
}

// ChatReply is the outcome of one conversation turn.
type ChatReply struct {
	SessionID   string                `json:"sessionId"`
	Reply       string                `json:"reply"`
	Sources     []domain.SearchResult `json:"sources"`
	RateLimited bool                  `json:"rateLimited"`
}

// NewChat creates the chat use case. generator may be nil.
func NewChat(st *store.VectorStore, sessions *session.Cache, generator port.Generator, topK int, threshold float64) *Chat {
	if topK <= 0 {
		topK = store.DefaultTopK
	}
	if threshold <= 0 {
		threshold = store.DefaultThreshold
	}
	return &Chat{
		store:     st,
		sessions:  sessions,
		generator: generator,
		topK:      topK,
		threshold: threshold,
	}
}

// Respond handles one user message. A rate-limited session gets an explicit
// RateLimited reply, not an error; an empty retrieval result degrades to a
// generic answer rather than blocking the conversation.
func (c *Chat) Respond(ctx context.Context, sessionID, message string) (ChatReply, error) {
	if !c.sessions.CheckRateLimit(sessionID) {
		return ChatReply{SessionID: sessionID, RateLimited: true}, nil
	}

	results, err := c.store.Search(ctx, message, c.topK, c.threshold)
	if err != nil {
		return ChatReply{}, fmt.Errorf("retrieval failed: %w", err)
	}

	sess, _ := c.sessions.Get(sessionID)
	reply := c.generate(ctx, message, sess.Messages, results)

	now := time.Now()
	msgs := append(sess.Messages,
		domain.Message{Role: "user", Content: message, Timestamp: now},
		domain.Message{Role: "assistant", Content: reply, Timestamp: now},
	)
	c.sessions.Set(sessionID, msgs)

	return ChatReply{SessionID: sessionID, Reply: reply, Sources: results}, nil
}

// generate asks the configured generator for a reply, degrading to a canned
// answer when no generator is configured or the call fails.
func (c *Chat) generate(ctx context.Context, message string, history []domain.Message, results []domain.SearchResult) string {
	if c.generator == nil {
		return cannedReply(results)
	}

	reply, err := c.generator.Generate(ctx, buildPrompt(message, history, results))
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Warn("generator failed, using canned reply", "err", err)
		return cannedReply(results)
	}
	return reply
}

// buildPrompt assembles the grounding context for the generator: retrieved
// passages first, then the recent conversation, then the question.
func buildPrompt(message string, history []domain.Message, results []domain.SearchResult) string {
	var sb strings.Builder

	sb.WriteString("You are an automotive service assistant. Respond concisely in 2-3 sentences.\n\n")
	sb.WriteString("Help with: maintenance, diagnostics, bookings, pricing, vehicle issues.\n\n")

	if len(results) > 0 {
		sb.WriteString("Reference information:\n")
		for _, r := range results {
			sb.WriteString("- ")
			sb.WriteString(r.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(history) > 0 {
		recent := history
		if len(recent) > 4 {
			recent = recent[len(recent)-4:]
		}
		sb.WriteString("Conversation so far:\n")
		for _, m := range recent {
			sb.WriteString(m.Role)
			sb.WriteString(": ")
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Question: ")
	sb.WriteString(message)
	sb.WriteString("\n\nKeep the response under 100 words. Only provide information you can verify.")
	return sb.String()
}

// cannedReply builds an answer straight from the retrieved passages.
func cannedReply(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "I'm here to help with automotive service questions: maintenance schedules, service costs, booking appointments, vehicle diagnostics, and common repairs. What would you like to know?"
	}

	var sb strings.Builder
	sb.WriteString(results[0].Content)
	if title, ok := results[0].Metadata["title"].(string); ok {
		sb.WriteString(" (See: ")
		sb.WriteString(title)
		sb.WriteString(")")
	}
	return sb.String()
}
