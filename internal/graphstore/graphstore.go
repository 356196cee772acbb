// Package graphstore durably materializes the discovered subgraph to a
// SQLite file, independent of the JSON checkpoint — the checkpoint exists
// to resume a crawl; this store exists so the result can be queried after
// the fact without re-parsing a checkpoint blob. Keeps the single-writer,
// WAL-mode connection-pooling pattern of a dedicated crawl database, but
// with a two-table vertex/edge schema instead of a dozen report tables.
package graphstore

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/videograph/walker/internal/vertex"
)

const schema = `
CREATE TABLE IF NOT EXISTS vertices (
	id TEXT PRIMARY KEY,
	url TEXT,
	title TEXT,
	channel TEXT,
	duration_seconds INTEGER,
	view_count INTEGER,
	depth INTEGER,
	parent_id TEXT,
	discovered_at DATETIME
);

CREATE TABLE IF NOT EXISTS edges (
	from_id TEXT NOT NULL,
	to_id TEXT NOT NULL,
	PRIMARY KEY (from_id, to_id)
);

CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_id);
CREATE INDEX IF NOT EXISTS idx_vertices_depth ON vertices(depth);
`

// Store is a durable sink for discovered vertices and their outbound
// edges, backed by a single-writer SQLite connection.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) a graphstore database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open graphstore: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: one writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or updates a vertex and its outbound edges in one
// transaction.
func (s *Store) Put(v *vertex.Vertex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO vertices (id, url, title, channel, duration_seconds, view_count, depth, parent_id, discovered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url=excluded.url, title=excluded.title, channel=excluded.channel, duration_seconds=excluded.duration_seconds,
			view_count=excluded.view_count, depth=excluded.depth, parent_id=excluded.parent_id,
			discovered_at=excluded.discovered_at
	`, v.ID, v.URL, v.Title, v.Channel, v.Duration, v.ViewCount, v.Depth, v.ParentID, v.DiscoveredAt)
	if err != nil {
		return fmt.Errorf("upsert vertex %s: %w", v.ID, err)
	}

	for _, to := range v.RelatedIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO edges (from_id, to_id) VALUES (?, ?)`, v.ID, to); err != nil {
			return fmt.Errorf("insert edge %s->%s: %w", v.ID, to, err)
		}
	}

	return tx.Commit()
}

// PutAll persists a batch of vertices, continuing past individual
// failures and returning the first error encountered (if any) after
// attempting every vertex — a single bad record shouldn't stop the rest
// of a large batch from being materialized.
func (s *Store) PutAll(vertices []*vertex.Vertex) error {
	var firstErr error
	for _, v := range vertices {
		if err := s.Put(v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// VertexCount returns how many vertices are stored.
func (s *Store) VertexCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM vertices`).Scan(&n)
	return n, err
}

// EdgeCount returns how many edges are stored.
func (s *Store) EdgeCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&n)
	return n, err
}

// Edge is a single directed related-video relationship.
type Edge struct {
	From string
	To   string
}

// AllEdges returns every stored edge, used by internal/graphviz to render
// the discovered subgraph.
func (s *Store) AllEdges() ([]Edge, error) {
	rows, err := s.db.Query(`SELECT from_id, to_id FROM edges`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.From, &e.To); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// AllVertices returns every stored vertex (without related ids, which
// live in the edges table).
func (s *Store) AllVertices() ([]*vertex.Vertex, error) {
	rows, err := s.db.Query(`SELECT id, url, title, channel, duration_seconds, view_count, depth, parent_id, discovered_at FROM vertices`)
	if err != nil {
		return nil, fmt.Errorf("query vertices: %w", err)
	}
	defer rows.Close()

	var out []*vertex.Vertex
	for rows.Next() {
		v := &vertex.Vertex{}
		if err := rows.Scan(&v.ID, &v.URL, &v.Title, &v.Channel, &v.Duration, &v.ViewCount, &v.Depth, &v.ParentID, &v.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("scan vertex: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
