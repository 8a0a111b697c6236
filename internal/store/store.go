package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	ferrors "github.com/fruitful-search/fruitful/internal/errors"
)

// Store is the persistent lexical index: one SQLite file holding the
// full-text document table, the product metadata table, and the
// ordinal-to-pid mapping.
//
// A Store is safe for concurrent readers. Writes assume a single writer;
// rebuilds take a cross-process lock in the command layer.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
}

// Open opens (or creates) the index store at path. An empty path opens
// an in-memory store for testing.
//
// Open fails with StoreUnavailable when the parent directory does not
// exist or the engine cannot initialize, and with CapabilityMissing when
// the runtime's SQLite lacks FTS5. FTS5 support is probed explicitly by
// creating and dropping a throwaway virtual table.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != "" {
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, ferrors.StoreUnavailable(
				fmt.Sprintf("index directory does not exist: %s", dir), err)
		}
		// WAL mode for concurrent readers during a rebuild.
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ferrors.StoreUnavailable("failed to open database", err)
	}

	// Single connection: keeps the in-memory DSN stable and prevents
	// writer lock contention on file stores.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// DSN params may be ignored by modernc.org/sqlite; set pragmas directly.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, ferrors.StoreUnavailable("failed to set pragma", err)
		}
	}

	if err := probeFTS5(db); err != nil {
		_ = db.Close()
		return nil, ferrors.CapabilityMissing(err)
	}

	s := &Store{db: db, path: path}
	if err := s.CreateSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// probeFTS5 checks FTS5 support by creating and dropping a throwaway
// virtual table. Any error is treated as "unsupported".
func probeFTS5(db *sql.DB) error {
	if _, err := db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS __fts5_probe USING fts5(x)"); err != nil {
		return err
	}
	_, err := db.Exec("DROP TABLE __fts5_probe")
	return err
}

// CreateSchema creates the three index structures if absent. It is
// idempotent: calling it on an initialized store loses no data and
// raises no duplicate-schema errors.
func (s *Store) CreateSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ferrors.StoreUnavailable("store is closed", nil)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);

	-- Full-text document table. Fields are independently stored but
	-- queried jointly; bm25(docs) scores across the table as a whole.
	CREATE VIRTUAL TABLE IF NOT EXISTS docs USING fts5(
		name, model, mpn, manufacturer, extra,
		tokenize='unicode61'
	);

	-- Authoritative product metadata keyed by pid. The stock column is
	-- deliberately untyped: integer counts when numeric, feed text
	-- like 'in stock' otherwise.
	CREATE TABLE IF NOT EXISTS meta (
		pid INTEGER PRIMARY KEY,
		url TEXT,
		price REAL,
		stock,
		date_added TEXT,
		discontinue_status TEXT
	);

	-- Bijection from document ordinal to pid.
	CREATE TABLE IF NOT EXISTS docs_map (
		ordinal INTEGER PRIMARY KEY,
		pid INTEGER
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return ferrors.StoreUnavailable("failed to initialize schema", err)
	}
	return nil
}

// execer abstracts *sql.DB and *sql.Tx so the single-document and
// transactional rebuild write paths share one implementation.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertDocument(ctx context.Context, q execer, f DocumentFields) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO docs(name, model, mpn, manufacturer, extra) VALUES (?, ?, ?, ?, ?)`,
		f.Name, f.Model, f.MPN, f.Manufacturer, f.Extra)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	ordinal, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read document ordinal: %w", err)
	}
	return ordinal, nil
}

func upsertMetadata(ctx context.Context, q execer, pid int64, m Metadata) error {
	_, err := q.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta(pid, url, price, stock, date_added, discontinue_status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		pid, m.URL, m.Price, m.Stock.Value(), m.DateAdded, m.DiscontinueStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata for pid %d: %w", pid, err)
	}
	return nil
}

func mapOrdinal(ctx context.Context, q execer, ordinal, pid int64) error {
	_, err := q.ExecContext(ctx,
		`INSERT OR REPLACE INTO docs_map(ordinal, pid) VALUES (?, ?)`,
		ordinal, pid)
	if err != nil {
		return fmt.Errorf("failed to map ordinal %d to pid %d: %w", ordinal, pid, err)
	}
	return nil
}

// InsertDocument appends one document and returns its assigned ordinal.
// This is the single-document write path; bulk rebuilds go through
// BeginRebuild.
func (s *Store) InsertDocument(ctx context.Context, f DocumentFields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ferrors.StoreUnavailable("store is closed", nil)
	}
	return insertDocument(ctx, s.db, f)
}

// UpsertMetadata inserts or replaces the metadata row for pid.
func (s *Store) UpsertMetadata(ctx context.Context, pid int64, m Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ferrors.StoreUnavailable("store is closed", nil)
	}
	return upsertMetadata(ctx, s.db, pid, m)
}

// Map inserts or replaces the ordinal-to-pid mapping row.
func (s *Store) Map(ctx context.Context, ordinal, pid int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ferrors.StoreUnavailable("store is closed", nil)
	}
	return mapOrdinal(ctx, s.db, ordinal, pid)
}

// Match executes a ranked full-text query and returns up to limit hits
// in ascending bm25 order (most relevant first under the engine's
// lower-is-better convention). Scores are returned as reported, never
// negated, to keep result ordering compatible with existing consumers.
//
// Expressions the engine rejects surface as a typed QuerySyntax error
// so the caller can retry with the fallback form.
func (s *Store) Match(ctx context.Context, expr string, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ferrors.StoreUnavailable("store is closed", nil)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, bm25(docs) AS score FROM docs WHERE docs MATCH ? ORDER BY score LIMIT ?`,
		expr, limit)
	if err != nil {
		if isSyntaxError(err) {
			return nil, ferrors.QuerySyntax(expr, err)
		}
		return nil, ferrors.Internal("match failed", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Ordinal, &h.Score); err != nil {
			return nil, ferrors.Internal("failed to scan match row", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// isSyntaxError reports whether err is FTS5 rejecting a match
// expression, as opposed to a store-level failure.
func isSyntaxError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "fts5") || strings.Contains(msg, "syntax error")
}

// Fetch materializes documents by ordinal, joined through the mapping
// to their metadata. Ordinals without a mapping row are absent from the
// result; such documents are unreachable by pid-joined queries.
func (s *Store) Fetch(ctx context.Context, ordinals []int64) (map[int64]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ferrors.StoreUnavailable("store is closed", nil)
	}

	result := make(map[int64]Row, len(ordinals))
	if len(ordinals) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ordinals))
	args := make([]any, len(ordinals))
	for i, o := range ordinals {
		placeholders[i] = "?"
		args[i] = o
	}

	query := fmt.Sprintf(`
		SELECT dm.ordinal, dm.pid,
		       d.name, d.model, d.mpn, d.manufacturer, d.extra,
		       m.url, m.price, m.stock, m.date_added, m.discontinue_status
		FROM docs d
		JOIN docs_map dm ON dm.ordinal = d.rowid
		JOIN meta m ON m.pid = dm.pid
		WHERE dm.ordinal IN (%s)`, strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ferrors.Internal("failed to fetch documents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r     Row
			name  sql.NullString
			model sql.NullString
			mpn   sql.NullString
			manuf sql.NullString
			extra sql.NullString
			url   sql.NullString
			price sql.NullFloat64
			stock any
			added sql.NullString
			disc  sql.NullString
		)
		if err := rows.Scan(&r.Ordinal, &r.PID,
			&name, &model, &mpn, &manuf, &extra,
			&url, &price, &stock, &added, &disc); err != nil {
			return nil, ferrors.Internal("failed to scan document row", err)
		}
		r.Doc = DocumentFields{
			Name:         name.String,
			Model:        model.String,
			MPN:          mpn.String,
			Manufacturer: manuf.String,
			Extra:        extra.String,
		}
		r.Meta = Metadata{
			URL:               url.String,
			Price:             price.Float64,
			Stock:             StockFromValue(stock),
			DateAdded:         added.String,
			DiscontinueStatus: disc.String,
		}
		result[r.Ordinal] = r
	}
	return result, rows.Err()
}

// MetadataURL resolves pid to its product URL directly against the
// metadata table, bypassing full-text search. The second return value
// is false when the pid has no metadata row.
func (s *Store) MetadataURL(ctx context.Context, pid int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ferrors.StoreUnavailable("store is closed", nil)
	}

	var url sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT url FROM meta WHERE pid = ?`, pid).Scan(&url)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, ferrors.Internal("failed to look up url", err)
	}
	return url.String, url.String != "", nil
}

// Stats returns index size counters. Errors degrade to zero counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Stats{}
	}

	var st Stats
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM docs`).Scan(&st.Documents)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM meta`).Scan(&st.Products)
	return st
}

// Path returns the file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// Rebuild is a transactional bulk write path. The whole run either
// commits atomically or rolls back; concurrent readers observe the
// pre-rebuild state until Commit.
type Rebuild struct {
	store *Store
	tx    *sql.Tx
	done  bool
}

// BeginRebuild starts a full rebuild transaction. All three structures
// are cleared inside the transaction, so a reader never observes a
// partially-populated store.
func (s *Store) BeginRebuild(ctx context.Context) (*Rebuild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ferrors.StoreUnavailable("store is closed", nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, ferrors.StoreUnavailable("failed to begin rebuild transaction", err)
	}

	for _, stmt := range []string{
		`DELETE FROM docs`,
		`DELETE FROM meta`,
		`DELETE FROM docs_map`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return nil, ferrors.StoreUnavailable("failed to clear index", err)
		}
	}

	return &Rebuild{store: s, tx: tx}, nil
}

// InsertDocument appends one document within the rebuild transaction.
func (r *Rebuild) InsertDocument(ctx context.Context, f DocumentFields) (int64, error) {
	return insertDocument(ctx, r.tx, f)
}

// UpsertMetadata inserts or replaces a metadata row within the rebuild
// transaction. Duplicate pids are last-write-wins.
func (r *Rebuild) UpsertMetadata(ctx context.Context, pid int64, m Metadata) error {
	return upsertMetadata(ctx, r.tx, pid, m)
}

// Map inserts or replaces a mapping row within the rebuild transaction.
func (r *Rebuild) Map(ctx context.Context, ordinal, pid int64) error {
	return mapOrdinal(ctx, r.tx, ordinal, pid)
}

// Commit makes the rebuilt index visible as a unit.
func (r *Rebuild) Commit() error {
	if r.done {
		return nil
	}
	r.done = true
	if err := r.tx.Commit(); err != nil {
		return ferrors.StoreUnavailable("failed to commit rebuild", err)
	}
	return nil
}

// Rollback abandons the rebuild, leaving the prior committed state.
// Safe to call after Commit.
func (r *Rebuild) Rollback() error {
	if r.done {
		return nil
	}
	r.done = true
	return r.tx.Rollback()
}
