// Package server implements the HTTP presentation layer: a JSON API over
// graph editing sessions plus an embedded single-page UI that drives it.
//
// Every mutation operation of the graph store is reachable through the API,
// and each response that carries graph state is recomputed from the store
// after the mutation, so derived views always reflect the latest change.
// Failures never crash the server; they degrade to a JSON error body.
package server

import (
	_ "embed"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/janwillms/graphboard/pkg/cache"
	"github.com/janwillms/graphboard/pkg/session"
)

//go:embed index.html
var indexHTML []byte

// Server holds the HTTP API state: the session store and a per-session
// lock table that serializes mutations, preserving the store's
// single-mutator model under concurrent requests.
type Server struct {
	store   session.Store
	logger  *log.Logger
	ttl     time.Duration
	renders cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a server around the given session store. Rendered artifacts
// are cached in process, keyed by the DOT source they were drawn from.
func New(store session.Store, logger *log.Logger, ttl time.Duration) *Server {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Server{
		store:   store,
		logger:  logger,
		ttl:     ttl,
		renders: cache.NewMemoryCache(),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Router builds the chi router with all API routes and the embedded page.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/nodes", s.handleAddNode)
			r.Patch("/nodes/{id}", s.handleSetLabel)
			r.Delete("/nodes/{id}", s.handleDeleteNode)

			r.Post("/edges", s.handleAddEdge)
			r.Delete("/edges", s.handleClearEdges)

			r.Get("/adjacency", s.handleAdjacency)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)

			r.Get("/render.svg", s.handleRenderSVG)
			r.Get("/render.png", s.handleRenderPNG)
			r.Get("/render.dot", s.handleRenderDOT)
		})
	})

	return r
}

// lockFor returns the mutex guarding one session's mutations.
func (s *Server) lockFor(sid string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sid]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sid] = l
	}
	return l
}

// releaseLock drops a session's lock table entry after session deletion.
func (s *Server) releaseLock(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sid)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
