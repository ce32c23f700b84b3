// Package api exposes the quotation assistant over HTTP. Each session is
// one conversation; turns within a session are serialized by a
// per-session mutex, and the catalog is shared read-only across all of
// them.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
	"github.com/alchemy-chemicals/quotebot/internal/compose"
	"github.com/alchemy-chemicals/quotebot/internal/dialogue"
	"github.com/alchemy-chemicals/quotebot/internal/events"
	"github.com/alchemy-chemicals/quotebot/internal/extract"
)

const defaultSessionCacheSize = 1024

// Options wires the server's collaborators.
type Options struct {
	Port             int
	Catalog          *catalog.Catalog
	Extractor        extract.Extractor
	Publisher        *events.Publisher
	SessionCacheSize int
	Logger           *slog.Logger
}

type session struct {
	mu            sync.Mutex
	conv          *dialogue.Conversation
	lastPublished dialogue.Order
}

type Server struct {
	router    *chi.Mux
	port      int
	cat       *catalog.Catalog
	extractor extract.Extractor
	composer  *compose.Composer
	publisher *events.Publisher
	sessions  *lru.Cache[string, *session]
	logger    *slog.Logger
}

func NewServer(opts Options) (*Server, error) {
	size := opts.SessionCacheSize
	if size <= 0 {
		size = defaultSessionCacheSize
	}
	sessions, err := lru.New[string, *session](size)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      opts.Port,
		cat:       opts.Catalog,
		extractor: opts.Extractor,
		composer:  compose.New(opts.Catalog),
		publisher: opts.Publisher,
		sessions:  sessions,
		logger:    opts.Logger,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Post("/{id}/messages", s.postMessage)
		r.Get("/{id}/quote", s.getQuote)
		r.Get("/{id}/quote/export", s.exportQuote)
		r.Delete("/{id}", s.deleteSession)
	})

	return s, nil
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	s.sessions.Add(id, &session{
		conv: dialogue.NewConversation(s.cat, s.extractor, s.logger),
	})
	s.logger.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	State    dialogue.State     `json:"state"`
	Kind     dialogue.ReplyKind `json:"kind"`
	Message  string             `json:"message"`
	Order    dialogue.Order     `json:"order"`
	NextSlot dialogue.Slot      `json:"next_slot,omitempty"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be {\"text\": \"...\"}"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	reply, err := sess.conv.Turn(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("turn failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if reply.Kind == dialogue.ReplyQuote {
		s.publishOnce(chi.URLParam(r, "id"), sess, reply)
	}

	writeJSON(w, http.StatusOK, messageResponse{
		State:    sess.conv.State(),
		Kind:     reply.Kind,
		Message:  s.composer.Render(reply),
		Order:    reply.Known,
		NextSlot: reply.NextSlot,
	})
}

// publishOnce emits a quote.created event the first time a given
// completed context is quoted; follow-up turns against the same quote
// stay silent.
func (s *Server) publishOnce(sessionID string, sess *session, reply dialogue.Reply) {
	if s.publisher == nil || reply.Known == sess.lastPublished {
		return
	}
	evt := events.QuoteCreated{
		SessionID:     sessionID,
		Product:       reply.Known.Product,
		Specification: reply.Known.Specification,
		QuantityKg:    reply.Known.QuantityKg,
		Grade:         reply.Known.Grade,
		City:          reply.Known.City,
		Total:         reply.Quote.Total.StringFixed(2),
		Currency:      "INR",
		Timestamp:     time.Now().UTC(),
	}
	if err := s.publisher.PublishQuoteCreated(evt); err != nil {
		s.logger.Warn("failed to publish quote event", "error", err)
		return
	}
	sess.lastPublished = reply.Known
}

func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	q, ok := sess.conv.Quote()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order is not complete yet"})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) exportQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	q, ok := sess.conv.Quote()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order is not complete yet"})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"quotation.txt\"")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, compose.QuoteText(q))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.sessions.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
