package movie

import (
	"fmt"
	"slices"
)

// Record is one validated movie row.
type Record struct {
	Title     string
	Year      int
	Languages []string
	Rating    float64

	// Line is the 1-based source line the record was read from.
	Line int
}

// HasLanguage reports whether lang is one of the record's languages.
// The comparison is exact: case-sensitive, no trimming, no substring match.
func (r Record) HasLanguage(lang string) bool {
	return slices.Contains(r.Languages, lang)
}

// Collection is an immutable, ordered snapshot of loaded records.
// The zero value is an empty collection.
type Collection struct {
	records []Record
}

// NewCollection copies records into a new collection, preserving order.
func NewCollection(records []Record) Collection {
	out := make([]Record, len(records))
	for i, r := range records {
		r.Languages = slices.Clone(r.Languages)
		out[i] = r
	}
	return Collection{records: out}
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.records)
}

// At returns the i-th record. The returned languages slice is a copy.
func (c Collection) At(i int) Record {
	r := c.records[i]
	r.Languages = slices.Clone(r.Languages)
	return r
}

// All returns a copy of every record in source order.
func (c Collection) All() []Record {
	return NewCollection(c.records).records
}

// SkipReason names the validation rule a rejected row failed.
type SkipReason string

const (
	ReasonMissingField   SkipReason = "missing title or year"
	ReasonInvalidYear    SkipReason = "invalid year"
	ReasonLanguageFormat SkipReason = "invalid language format"
	ReasonTooManyLangs   SkipReason = "too many languages"
	ReasonLanguageLength SkipReason = "language too long"
	ReasonInvalidRating  SkipReason = "invalid rating"
	ReasonMalformedRow   SkipReason = "malformed row"
)

// SkipNotice describes a row that was rejected during a load.
type SkipNotice struct {
	Line   int        // 1-based source line
	Reason SkipReason // rule that failed
	Value  string     // offending raw value, if any
}

func (n SkipNotice) String() string {
	if n.Value == "" {
		return fmt.Sprintf("line %d: %s", n.Line, n.Reason)
	}
	return fmt.Sprintf("line %d: %s %q", n.Line, n.Reason, n.Value)
}

// Result is the outcome of a successful load.
type Result struct {
	Records Collection
	Skipped []SkipNotice

	// Rows counts data rows read, header excluded.
	Rows int
	// Bytes counts input bytes consumed, after BOM removal.
	Bytes int64
}

// SourceError is a fatal load failure: the source could not be opened or read.
type SourceError struct {
	Path string
	Op   string // "open" or "read"
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s movie source: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s movie source %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
