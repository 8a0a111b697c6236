// Package builder rebuilds the lexical index from catalog records.
package builder

import (
	"context"
	"log/slog"

	"github.com/fruitful-search/fruitful/internal/catalog"
	"github.com/fruitful-search/fruitful/internal/store"
)

// Stats summarizes one rebuild run.
type Stats struct {
	// Indexed is the number of documents written to the full-text table.
	Indexed int
	// Skipped is the number of records without a valid product id.
	// These are still searchable but carry no metadata, so they never
	// appear in joined results.
	Skipped int
}

// Build replaces the entire index with the given records inside one
// transaction: concurrent readers observe fully-old or fully-new state,
// never a mix. A failed run rolls back and leaves the prior index.
//
// A record with no valid pid is indexed for search but gets no metadata
// or mapping row and counts as skipped; it never aborts the run.
// Duplicate pids are last-write-wins.
func Build(ctx context.Context, s *store.Store, records []catalog.Record) (Stats, error) {
	rebuild, err := s.BeginRebuild(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer rebuild.Rollback()

	var stats Stats
	for _, record := range records {
		ordinal, err := rebuild.InsertDocument(ctx, record.Document())
		if err != nil {
			return Stats{}, err
		}
		stats.Indexed++

		pid, ok := record.PID()
		if !ok {
			stats.Skipped++
			slog.Debug("record has no valid pid, indexing without metadata",
				"ordinal", ordinal)
			continue
		}

		if err := rebuild.UpsertMetadata(ctx, pid, record.Metadata()); err != nil {
			return Stats{}, err
		}
		if err := rebuild.Map(ctx, ordinal, pid); err != nil {
			return Stats{}, err
		}
	}

	if err := rebuild.Commit(); err != nil {
		return Stats{}, err
	}

	slog.Info("index rebuilt",
		"indexed", stats.Indexed,
		"skipped", stats.Skipped)
	return stats, nil
}

// BuildFromFile loads the catalog at path and rebuilds the index from it.
func BuildFromFile(ctx context.Context, s *store.Store, path string) (Stats, error) {
	records, err := catalog.Load(path)
	if err != nil {
		return Stats{}, err
	}
	return Build(ctx, s, records)
}
