package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/janwillms/graphboard/pkg/cache"
	apperrors "github.com/janwillms/graphboard/pkg/errors"
	"github.com/janwillms/graphboard/pkg/graph"
	gio "github.com/janwillms/graphboard/pkg/io"
	"github.com/janwillms/graphboard/pkg/render"
	"github.com/janwillms/graphboard/pkg/session"
)

// =============================================================================
// Request / Response Bodies
// =============================================================================

type sessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

type nodeRequest struct {
	Label string `json:"label"`
}

type edgeRequest struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Direction string `json:"direction"`
	Label     string `json:"label"`
}

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// =============================================================================
// Session Handlers
// =============================================================================

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "could not store session"))
		return
	}
	s.logger.Info("session created", "id", sess.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt.Format(timeLayout),
		ExpiresAt: sess.ExpiresAt.Format(timeLayout),
	})
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if err := s.store.Delete(r.Context(), sid); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "could not delete session"))
		return
	}
	s.releaseLock(sid)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Graph Handlers
// =============================================================================

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	s.withGraph(w, r, func(g *graph.Graph) (any, int, error) {
		return g.Document(), http.StatusOK, nil
	})
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		if err := apperrors.ValidateLabel(req.Label); err != nil {
			return nil, 0, err
		}
		return g.AddNode(req.Label), http.StatusCreated, nil
	})
}

func (s *Server) handleSetLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req nodeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		if err := apperrors.ValidateLabel(req.Label); err != nil {
			return nil, 0, err
		}
		if err := g.SetLabel(id, req.Label); err != nil {
			return nil, 0, err
		}
		n, _ := g.Lookup(id)
		return n, http.StatusOK, nil
	})
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		g.DeleteNode(id) // cascade; absent id is a no-op
		return nil, http.StatusNoContent, nil
	})
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		if err := apperrors.ValidateLabel(req.Label); err != nil {
			return nil, 0, err
		}
		if err := g.AddEdge(req.Source, req.Target, graph.Direction(req.Direction), req.Label); err != nil {
			return nil, 0, err
		}
		edges := g.Edges()
		return edges[len(edges)-1], http.StatusCreated, nil
	})
}

func (s *Server) handleClearEdges(w http.ResponseWriter, r *http.Request) {
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		g.ClearEdges()
		return nil, http.StatusNoContent, nil
	})
}

func (s *Server) handleAdjacency(w http.ResponseWriter, r *http.Request) {
	s.withGraph(w, r, func(g *graph.Graph) (any, int, error) {
		return g.AdjacencyList(), http.StatusOK, nil
	})
}

// =============================================================================
// Import / Export Handlers
// =============================================================================

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", gio.DefaultFilename))
	if err := gio.WriteJSON(sess.Graph(), w); err != nil {
		s.logger.Error("export failed", "session", sess.ID, "err", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	imported, err := gio.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mutateGraph(w, r, func(g *graph.Graph) (any, int, error) {
		g.ReplaceAll(imported.Nodes(), imported.Edges())
		return g.Document(), http.StatusOK, nil
	})
}

// =============================================================================
// Render Handlers
// =============================================================================

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	s.renderImage(w, r, "svg", "image/svg+xml", render.SVG)
}

func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	s.renderImage(w, r, "png", "image/png", render.PNG)
}

// renderImage draws the session's graph in one format, going through the
// render cache. The cache key is derived from the DOT source, so any graph
// mutation naturally produces a fresh drawing.
func (s *Server) renderImage(w http.ResponseWriter, r *http.Request, format, contentType string, draw func(context.Context, *graph.Graph) ([]byte, error)) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	g := sess.Graph()
	key := cache.RenderKey(render.ToDOT(g), format)

	data, hit, err := s.renders.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("render cache read failed", "err", err)
	}
	if !hit {
		data, err = draw(r.Context(), g)
		if err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "could not render %s", format))
			return
		}
		if err := s.renders.Set(r.Context(), key, data, s.ttl); err != nil {
			s.logger.Warn("render cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(render.ToDOT(sess.Graph())))
}

// =============================================================================
// Session Plumbing
// =============================================================================

// loadSession fetches the request's session for read-only handlers.
// On failure it writes the error response and returns ok=false.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sid := chi.URLParam(r, "sid")
	if err := apperrors.ValidateSessionID(sid); err != nil {
		s.writeError(w, err)
		return nil, false
	}

	sess, err := s.store.Get(r.Context(), sid)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "could not load session"))
		return nil, false
	}
	if sess == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeSessionNotFound, "session %s not found", sid))
		return nil, false
	}
	return sess, true
}

// withGraph runs a read-only view function against the session's graph.
func (s *Server) withGraph(w http.ResponseWriter, r *http.Request, fn func(g *graph.Graph) (any, int, error)) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	out, status, err := fn(sess.Graph())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status, out)
}

// mutateGraph serializes a mutation against one session: lock, load,
// mutate, snapshot, store. On a rejected mutation the session is not
// written back, so the store stays unchanged.
func (s *Server) mutateGraph(w http.ResponseWriter, r *http.Request, fn func(g *graph.Graph) (any, int, error)) {
	sid := chi.URLParam(r, "sid")
	if err := apperrors.ValidateSessionID(sid); err != nil {
		s.writeError(w, err)
		return
	}

	lock := s.lockFor(sid)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	g := sess.Graph()
	out, status, err := fn(g)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.SetGraph(g)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "could not store session"))
		return
	}

	if out == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, out)
}

// =============================================================================
// Encoding Helpers
// =============================================================================

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "could not parse request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and JSON body. Graph store
// sentinels are translated to structured codes first.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	status := statusFor(apiErr.Code)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorInfo{
		Code:    apiErr.Code,
		Message: apiErr.Message,
	}})
}

// toAPIError normalizes any error into a structured *errors.Error.
func toAPIError(err error) *apperrors.Error {
	var apiErr *apperrors.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, graph.ErrUnknownNode):
		return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "node not found")
	case errors.Is(err, graph.ErrTooFewNodes):
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, err, "need at least two nodes to add an edge")
	case errors.Is(err, graph.ErrSelfLoop):
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, err, "source and target must be different")
	case errors.Is(err, graph.ErrUnknownSourceNode), errors.Is(err, graph.ErrUnknownTargetNode):
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, err, "edge endpoints must be existing nodes")
	case errors.Is(err, graph.ErrInvalidDirection):
		return apperrors.Wrap(apperrors.ErrCodeInvalidDirection, err, "direction must be directed, bidirected, or undirected")
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "internal error")
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidNodeID,
		apperrors.ErrCodeInvalidEdge,
		apperrors.ErrCodeInvalidDirection,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeParse:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeNodeNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
