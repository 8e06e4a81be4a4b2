// Package postgres implements candidate retrieval, the uncapped union
// count, and post hydration over Postgres with tsvector and pgvector.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/hanseo-labs/postfind/internal/config"
	"github.com/hanseo-labs/postfind/internal/domain/post"
	"github.com/hanseo-labs/postfind/internal/domain/search/candidate"
	"github.com/hanseo-labs/postfind/internal/domain/search/source"
)

// Open creates a Postgres connection pool. The pool is process-wide and
// holds no per-request state; it is safe for unrestricted concurrent use.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnLifetimeSec) * time.Second)
	return db, nil
}

// Repo is the retrieval store. Lexical sources come from configuration;
// their column and regconfig identifiers are validated there before being
// interpolated into SQL text (bind parameters cannot name columns).
type Repo struct {
	db           *sql.DB
	sources      []source.Source
	lexicalSQL   map[string]string
	existsSQL    map[string]string
	semThreshold float64
}

// New creates a Repo over an open pool.
func New(db *sql.DB, sources []config.LexicalSource, semanticThreshold float64) *Repo {
	r := &Repo{
		db:           db,
		sources:      make([]source.Source, 0, len(sources)),
		lexicalSQL:   make(map[string]string, len(sources)),
		existsSQL:    make(map[string]string, len(sources)),
		semThreshold: semanticThreshold,
	}
	for _, src := range sources {
		r.sources = append(r.sources, source.NewLexical(src.Name))
		// Relevance order with id tie-break: the store's ranking function
		// may legitimately tie, and fusion requires deterministic ranks.
		r.lexicalSQL[src.Name] = fmt.Sprintf(
			`SELECT p.id
			 FROM post p
			 WHERE p.%[1]s @@ websearch_to_tsquery('%[2]s', $1)
			 ORDER BY ts_rank_cd(p.%[1]s, websearch_to_tsquery('%[2]s', $1)) DESC, p.id ASC
			 LIMIT $2`,
			src.VectorColumn, src.TSConfig,
		)
		r.existsSQL[src.Name] = fmt.Sprintf(
			"p.%s @@ websearch_to_tsquery('%s', $1)", src.VectorColumn, src.TSConfig,
		)
	}
	return r
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// LexicalSources lists the configured full-text sources in config order.
func (r *Repo) LexicalSources() []source.Source {
	return r.sources
}

// LexicalSearch returns at most cap candidates for one lexical source,
// ranked by full-text relevance. Ranks are assigned from scan order.
func (r *Repo) LexicalSearch(
	ctx context.Context, src source.Source, query string, cap int,
) (candidate.List, error) {
	if query == "" {
		return candidate.List{Source: src}, nil
	}
	q, ok := r.lexicalSQL[src.Name]
	if !ok {
		return candidate.List{}, fmt.Errorf("unknown lexical source %q", src.Name)
	}

	ids, err := r.queryIDs(ctx, q, query, cap)
	if err != nil {
		return candidate.List{}, fmt.Errorf("lexical search %s: %w", src.Name, err)
	}
	return candidate.FromIDs(src, ids), nil
}

// SemanticSearch returns at most cap candidates ranked by cosine distance
// to the query vector, closest first, ties broken by id ascending.
func (r *Repo) SemanticSearch(ctx context.Context, vector []float32, cap int) (candidate.List, error) {
	if len(vector) == 0 {
		return candidate.List{Source: source.SemanticSource}, nil
	}

	const q = `SELECT p.id
		 FROM post p
		 WHERE p.embedding IS NOT NULL
		 ORDER BY p.embedding <=> $1::vector ASC, p.id ASC
		 LIMIT $2`

	ids, err := r.queryIDs(ctx, q, formatVector(vector), cap)
	if err != nil {
		return candidate.List{}, fmt.Errorf("semantic search: %w", err)
	}
	return candidate.FromIDs(source.SemanticSource, ids), nil
}

// CountMatches returns the uncapped cardinality of the union of ids matched
// by any source: one count over OR-ed per-source existence predicates, so
// overlapping matches are never double counted. Semantic existence is a
// cosine distance at or below the configured threshold (ANN ordering has no
// natural boolean predicate of its own).
func (r *Repo) CountMatches(ctx context.Context, query string, vector []float32) (int64, error) {
	clauses := make([]string, 0, len(r.sources)+1)
	args := make([]any, 0, 3)

	if query != "" {
		args = append(args, query)
		for _, src := range r.sources {
			clauses = append(clauses, r.existsSQL[src.Name])
		}
	}
	if len(vector) > 0 {
		args = append(args, formatVector(vector), r.semThreshold)
		clauses = append(clauses, fmt.Sprintf(
			"(p.embedding IS NOT NULL AND p.embedding <=> $%d::vector <= $%d)",
			len(args)-1, len(args),
		))
	}
	if len(clauses) == 0 {
		return 0, nil
	}

	q := "SELECT count(*) FROM post p WHERE " + strings.Join(clauses, " OR ")

	var total int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return total, nil
}

// PostsByID fetches listing records for the given ids. The store's
// fetch-by-id order is arbitrary; callers re-sort into their own order.
// Ids deleted since retrieval are simply absent from the result.
func (r *Repo) PostsByID(ctx context.Context, ids []int64) ([]post.Summary, error) {
	if len(ids) == 0 {
		return []post.Summary{}, nil
	}

	const q = `SELECT p.id, u.username, p.title, p.summary, p.thumbnail_url, p.created_at, p.updated_at
		 FROM post p
		 INNER JOIN users u ON p.user_id = u.id
		 WHERE p.id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	defer rows.Close()

	records := make([]post.Summary, 0, len(ids))
	for rows.Next() {
		var p post.Summary
		if err := rows.Scan(
			&p.ID, &p.UserUsername, &p.Title, &p.Summary,
			&p.ThumbnailURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return records, nil
}

// maxIDPrealloc bounds the initial id slice capacity. The retrieval cap is
// derived from client pagination input; it limits the SQL scan but must not
// size an allocation directly.
const maxIDPrealloc = 1024

func (r *Repo) queryIDs(ctx context.Context, q string, key any, cap int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, q, key, cap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prealloc := cap
	if prealloc < 0 || prealloc > maxIDPrealloc {
		prealloc = maxIDPrealloc
	}
	ids := make([]int64, 0, prealloc)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
