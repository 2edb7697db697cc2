// Package session provides storage for graph editing sessions.
//
// A session owns the node and edge sequences of exactly one interactive
// graph for the duration of the editing session. Sessions expire; the only
// durable takeaway of a session is a manual JSON export.
//
// # Backends
//
// The Store interface has three implementations:
//   - memory: in-process storage, the default for a single server
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage, same role as redis
//
// # Usage
//
// Create a store and a session:
//
//	store := session.NewMemoryStore()
//	sess := session.New(session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
// Mutate the session's graph:
//
//	g := sess.Graph()
//	g.AddNode("Start")
//	sess.SetGraph(g)
//	store.Set(ctx, sess)
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/janwillms/graphboard/pkg/graph"
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session stores the graph state of one editing session.
// The node and edge sequences are stored flat so the session serializes
// cleanly to JSON (redis) and BSON (mongo).
type Session struct {
	ID        string       `json:"id" bson:"_id"`
	Nodes     []graph.Node `json:"nodes" bson:"nodes"`
	Edges     []graph.Edge `json:"edges" bson:"edges"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time    `json:"expires_at" bson:"expires_at"`
}

// New creates an empty session with a fresh UUID and the given TTL.
func New(ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Graph materializes the session's sequences into a graph store.
// The graph is independent; call [Session.SetGraph] to write changes back.
func (s *Session) Graph() *graph.Graph {
	g := graph.New()
	g.ReplaceAll(s.Nodes, s.Edges)
	return g
}

// SetGraph snapshots the graph's sequences into the session and bumps
// UpdatedAt.
func (s *Session) SetGraph(g *graph.Graph) {
	s.Nodes = g.Nodes()
	s.Edges = g.Edges()
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy. Stores hand out clones so callers never share
// slices with stored state.
func (s *Session) Clone() *Session {
	c := *s
	c.Nodes = slices.Clone(s.Nodes)
	c.Edges = slices.Clone(s.Edges)
	return &c
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error
}
