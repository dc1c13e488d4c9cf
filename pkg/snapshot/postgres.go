package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface PGStore reads through. *pgxpool.Pool
// satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Accounts and follows are read in id order, which becomes the graph's
// node and edge order.
const (
	accountsQuery = `SELECT username, COALESCE(display_name, ''), COALESCE(bio, ''),
	follower_count, following_count, verified, depth, COALESCE(profile_image_url, '')
FROM accounts ORDER BY id`

	followsQuery = `SELECT source, target, COALESCE(type, 'follows'), COALESCE(weight, 1)
FROM follows ORDER BY id`
)

// PGStore reads a crawled graph from the scraper's PostgreSQL tables
// (accounts and follows).
type PGStore struct {
	pool *pgxpool.Pool
	q    Querier
}

// OpenPGStore connects to the database at databaseURL.
func OpenPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// A load is two sequential queries
	config.MaxConns = 2
	config.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PGStore{pool: pool, q: pool}, nil
}

// NewPGStoreWithQuerier wraps an existing connection or pool.
func NewPGStoreWithQuerier(q Querier) *PGStore {
	return &PGStore{q: q}
}

// Close closes the connection pool, if the store owns one.
func (s *PGStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadGraph reads every account and follow edge. The seed is the first
// account at crawl depth 0.
func (s *PGStore) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	g := graph.New("")
	g.Metadata["source"] = string(KindPostgres)

	rows, err := s.q.Query(ctx, accountsQuery)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	seedFound := false
	for rows.Next() {
		var rec graph.NodeRecord
		if err := rows.Scan(&rec.Username, &rec.DisplayName, &rec.Bio,
			&rec.FollowerCount, &rec.FollowingCount, &rec.Verified, &rec.Depth, &rec.ProfileImageURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan account: %w", err)
		}
		key := g.AddNode(rec)
		if !seedFound && rec.Depth == 0 {
			g.Seed = key
			seedFound = true
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	rows, err = s.q.Query(ctx, followsQuery)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e graph.Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Type, &e.Weight); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		e.Source = graph.Canonical(e.Source)
		e.Target = graph.Canonical(e.Target)
		g.AddEdge(e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read follows: %w", err)
	}
	return g, nil
}
