// Package search implements ranked keyword search over the lexical index.
package search

import (
	"context"
	"log/slog"
	"os"
	"strings"

	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/store"
)

// Result is one ranked product. Fields mirror what front ends render;
// the store-internal ordinal is deliberately absent.
type Result struct {
	PID               int64       `json:"pid"`
	Name              string      `json:"name"`
	Model             string      `json:"model,omitempty"`
	MPN               string      `json:"mpn,omitempty"`
	Manufacturer      string      `json:"manufacturer,omitempty"`
	Price             float64     `json:"price"`
	Stock             store.Stock `json:"stock"`
	URL               string      `json:"url,omitempty"`
	DateAdded         string      `json:"date_added,omitempty"`
	DiscontinueStatus string      `json:"discontinue_status,omitempty"`

	// Score is the raw bm25 relevance value; lower means more relevant.
	Score float64 `json:"score"`
}

// Engine serves searches against one open index store. A handle is
// cheap to hold across many queries; the engine keeps no per-query
// state and no cache.
type Engine struct {
	store *store.Store
}

// Open opens the index at path for searching. A missing file is
// IndexNotFound (checked before the store touches it, so a fresh
// checkout gets the "build it first" message rather than an empty
// store materializing as a side effect).
func Open(path string) (*Engine, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ferrors.IndexNotFound(path)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Engine{store: s}, nil
}

// NewEngine wraps an already open store. Used by tests and by callers
// that manage the store lifecycle themselves.
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Search runs one ranked query and returns up to limit results, most
// relevant first.
//
// A blank query and a query with no searchable tokens both return an
// empty slice and no error. The conjunctive (implicit AND) expression
// is tried first; if the engine rejects its syntax the query is retried
// once with every token quoted and OR-joined. Errors on the fallback
// propagate.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	tokens := store.Tokenize(query)
	if len(tokens) == 0 {
		return []Result{}, nil
	}

	hits, err := e.matchWithFallback(ctx, tokens, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []Result{}, nil
	}

	ordinals := make([]int64, len(hits))
	for i, h := range hits {
		ordinals[i] = h.Ordinal
	}
	rows, err := e.store.Fetch(ctx, ordinals)
	if err != nil {
		return nil, err
	}

	// Hits keep the store's ascending-score order; documents without a
	// metadata mapping drop out at the join.
	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		row, ok := rows[h.Ordinal]
		if !ok {
			continue
		}
		results = append(results, Result{
			PID:               row.PID,
			Name:              row.Doc.Name,
			Model:             row.Doc.Model,
			MPN:               row.Doc.MPN,
			Manufacturer:      row.Doc.Manufacturer,
			Price:             row.Meta.Price,
			Stock:             row.Meta.Stock,
			URL:               row.Meta.URL,
			DateAdded:         row.Meta.DateAdded,
			DiscontinueStatus: row.Meta.DiscontinueStatus,
			Score:             h.Score,
		})
	}
	return results, nil
}

// matchWithFallback is the explicit two-step expression strategy:
// conjunctive first, disjunctive-quoted on a syntax rejection, at most
// one retry.
func (e *Engine) matchWithFallback(ctx context.Context, tokens []string, limit int) ([]store.Hit, error) {
	expr := store.ConjunctiveQuery(tokens)
	hits, err := e.store.Match(ctx, expr, limit)
	if err == nil {
		return hits, nil
	}
	if !ferrors.IsQuerySyntax(err) {
		return nil, err
	}

	fallback := store.DisjunctiveQuery(tokens)
	slog.Debug("conjunctive expression rejected, retrying disjunctive",
		"expr", expr, "fallback", fallback)
	return e.store.Match(ctx, fallback, limit)
}

// LookupURL resolves a product id to its URL, bypassing full-text
// search. The second return value is false when the pid is unknown or
// has no URL.
func (e *Engine) LookupURL(ctx context.Context, pid int64) (string, bool, error) {
	return e.store.MetadataURL(ctx, pid)
}

// Stats reports index size counters for status displays.
func (e *Engine) Stats() store.Stats {
	return e.store.Stats()
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}
