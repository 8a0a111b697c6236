// Package store implements the on-disk lexical index for the product
// catalog: an SQLite FTS5 document table, a metadata table keyed by
// product id, and the ordinal-to-pid mapping that joins them.
package store

// DocumentFields is the searchable projection of one product.
// All fields are free text; absent source values are empty strings.
type DocumentFields struct {
	Name         string
	Model        string
	MPN          string
	Manufacturer string
	// Extra concatenates secondary descriptive attributes
	// (category, image alt-text) for broader recall.
	Extra string
}

// Metadata is the authoritative non-text product record keyed by pid.
type Metadata struct {
	URL   string
	Price float64
	Stock Stock
	// DateAdded and DiscontinueStatus are opaque strings from the feed.
	DateAdded         string
	DiscontinueStatus string
}

// Hit is one ranked full-text match.
type Hit struct {
	// Ordinal is the store-internal document sequence number.
	// It is never exposed to consumers.
	Ordinal int64

	// Score is the bm25() relevance value. FTS5 reports negative values
	// for matches and lower means more relevant; callers sort ascending.
	Score float64
}

// Row is a document materialized with its product metadata,
// resolved through the ordinal-to-pid mapping.
type Row struct {
	Ordinal int64
	PID     int64
	Doc     DocumentFields
	Meta    Metadata
}

// Stats reports index size counters.
type Stats struct {
	// Documents is the number of rows in the full-text table.
	Documents int
	// Products is the number of metadata rows (documents without a
	// valid pid are indexed but carry no metadata).
	Products int
}
