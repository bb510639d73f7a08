package server

import (
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"garage/internal/adapter/session"
	"garage/internal/adapter/store"
	"garage/internal/usecase"
)

// Server exposes the retrieval engine and chat flow over HTTP.
type Server struct {
	app       *fiber.App
	store     *store.VectorStore
	sessions  *session.Cache
	chat      *usecase.Chat
	reindexer *usecase.Reindexer
}

// New wires the HTTP routes around the given components.
func New(st *store.VectorStore, sessions *session.Cache, chat *usecase.Chat, reindexer *usecase.Reindexer) *Server {
	srv := &Server{
		app: fiber.New(fiber.Config{
			AppName: "Garage Service API",
		}),
		store:     st,
		sessions:  sessions,
		chat:      chat,
		reindexer: reindexer,
	}
	srv.routes()
	return srv
}

func (srv *Server) routes() {
	srv.app.Get("/api/health", func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	srv.app.Post("/api/reindex", srv.handleReindex)
	srv.app.Get("/api/reindex/status", srv.handleReindexStatus)
	srv.app.Delete("/api/reindex/clear", srv.handleClear)

	srv.app.Post("/api/chatbot", srv.handleChat)
	srv.app.Get("/api/search", srv.handleSearch)
	srv.app.Get("/api/sessions/stats", srv.handleSessionStats)
}

// Run starts serving on addr and blocks.
func (srv *Server) Run(addr string) error {
	log.Info("starting server", "addr", addr)
	return srv.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (srv *Server) Shutdown() error {
	return srv.app.Shutdown()
}

func (srv *Server) handleReindex(ctx fiber.Ctx) error {
	report, err := srv.reindexer.Reindex(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "documents re-indexed successfully",
		"stats": fiber.Map{
			"documentsIndexed": report.DocumentsIndexed,
			"indexSize":        report.IndexSize,
			"duration":         report.Duration.String(),
		},
	})
}

func (srv *Server) handleReindexStatus(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"status":  "active",
		"stats":   srv.store.Stats(),
	})
}

func (srv *Server) handleClear(ctx fiber.Ctx) error {
	srv.store.Clear()
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "vector store cleared",
	})
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (srv *Server) handleChat(ctx fiber.Ctx) error {
	var req chatRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.Message == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "message is required",
		})
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := srv.chat.Respond(ctx, req.SessionID, req.Message)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if reply.RateLimited {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success":   false,
			"error":     "rate limit exceeded",
			"sessionId": reply.SessionID,
		})
	}

	return ctx.JSON(fiber.Map{
		"success":   true,
		"sessionId": reply.SessionID,
		"reply":     reply.Reply,
		"sources":   reply.Sources,
	})
}

func (srv *Server) handleSearch(ctx fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "query parameter q is required",
		})
	}

	topK, err := strconv.Atoi(ctx.Query("top_k", strconv.Itoa(store.DefaultTopK)))
	if err != nil || topK <= 0 {
		topK = store.DefaultTopK
	}
	threshold := store.DefaultThreshold
	if raw := ctx.Query("threshold"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = v
		}
	}

	results, searchErr := srv.store.Search(ctx, query, topK, threshold)
	if searchErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   searchErr.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"query":   query,
		"results": results,
	})
}

func (srv *Server) handleSessionStats(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success":  true,
		"size":     srv.sessions.Len(),
		"sessions": srv.sessions.Stats(),
	})
}
