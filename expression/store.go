// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"errors"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"
)

// Store holds the schema of an ingested matrix and one Result per
// gene, keyed by gene identifier. A Store is filled by a single
// Loader run and is read-only afterwards.
type Store struct {
	schema  *Schema
	results map[string]*Result
}

// NewStore returns a Store holding the given results. It fails with
// *DuplicateIDError if two results share an identifier.
func NewStore(schema *Schema, results []*Result) (*Store, error) {
	s := &Store{schema: schema, results: make(map[string]*Result, len(results))}
	for _, res := range results {
		if err := s.insert(res); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) insert(res *Result) error {
	if _, ok := s.results[res.ID]; ok {
		return &DuplicateIDError{ID: res.ID}
	}
	s.results[res.ID] = res
	return nil
}

// Schema returns the schema of the ingested matrix.
func (s *Store) Schema() *Schema { return s.schema }

// Len returns the number of genes in the store.
func (s *Store) Len() int { return len(s.results) }

// Get returns the result for the given gene identifier.
func (s *Store) Get(id string) (*Result, bool) {
	res, ok := s.results[id]
	return res, ok
}

// IDs returns all gene identifiers in sorted order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.results))
	for id := range s.results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Results returns all results sorted by gene identifier.
func (s *Store) Results() []*Result {
	ids := s.IDs()
	out := make([]*Result, len(ids))
	for i, id := range ids {
		out[i] = s.results[id]
	}
	return out
}

// LoaderConfig controls a Loader. The zero value loads every row
// with DefaultThreshold, fails on the first bad row, and reads the
// GCT layout.
type LoaderConfig struct {
	// Stop after this many data rows. <= 0 means no limit.
	MaxRows int
	// Z-score cutoff. The sign is ignored; 0 means
	// DefaultThreshold.
	Threshold float64
	// Skip rows with bad value counts, unparseable values, or
	// repeated identifiers, instead of failing the whole load.
	SkipInvalid bool
	// Matrix layout. nil means GCT.
	Format Format
}

// Loader streams a matrix through row splitting, statistics and
// classification into a new Store.
type Loader struct {
	maxRows     int
	classifier  Classifier
	skipInvalid bool
	format      Format
}

func NewLoader(cfg LoaderConfig) *Loader {
	format := cfg.Format
	if format == nil {
		format = GCT{}
	}
	return &Loader{
		maxRows:     cfg.MaxRows,
		classifier:  NewClassifier(cfg.Threshold),
		skipInvalid: cfg.SkipInvalid,
		format:      format,
	}
}

// Threshold returns the normalized cutoff this loader classifies
// with.
func (ldr *Loader) Threshold() float64 { return ldr.classifier.Threshold() }

// Load reads a whole matrix from r.
func (ldr *Loader) Load(r io.Reader) (*Store, error) {
	return ldr.LoadLines(NewLineReader(r))
}

// LoadLines reads a whole matrix from lines. Unless SkipInvalid is
// set, any bad row aborts the load and no Store is returned.
func (ldr *Loader) LoadLines(lines LineReader) (*Store, error) {
	store := &Store{results: map[string]*Result{}}
	schema, err := ldr.Walk(lines, func(schema *Schema, row Row) error {
		z := Describe(row.Values).ZScores(row.Values)
		return store.insert(ldr.classifier.Classify(row.ID, row.Label, schema.TissueNames(), z))
	})
	if err != nil {
		return nil, err
	}
	store.schema = schema
	log.Debugf("loaded %d genes, threshold %g", store.Len(), ldr.Threshold())
	return store, nil
}

// Walk parses the schema from lines, then calls fn once per data row
// whose value count matches the schema, stopping after MaxRows rows.
//
// An error from splitting a row, a value count mismatch, or an error
// returned by fn aborts the walk -- unless SkipInvalid is set and the
// error is a *RowCountError, *ValueParseError or *DuplicateIDError,
// in which case the row is logged and skipped.
func (ldr *Loader) Walk(lines LineReader, fn func(*Schema, Row) error) (*Schema, error) {
	schema, err := ldr.format.ParseSchema(lines)
	if err != nil {
		return nil, err
	}
	skipped := 0
	index := 0
	for ; ldr.maxRows <= 0 || index < ldr.maxRows; index++ {
		if !lines.Scan() {
			break
		}
		err := ldr.walkLine(schema, lines.Text(), index, fn)
		if err == nil {
			continue
		}
		if !ldr.skipInvalid || !skippable(err) {
			return nil, err
		}
		log.WithError(err).Warn("skipping row")
		skipped++
	}
	if err := lines.Err(); err != nil {
		return nil, &IOError{Op: "read rows", Err: err}
	}
	if ldr.maxRows <= 0 && index != schema.Rows {
		log.Debugf("header declares %d rows, read %d", schema.Rows, index)
	}
	log.Debugf("read %d rows, skipped %d", index, skipped)
	return schema, nil
}

// walkLine handles data row number index (0-based, after the
// header).
func (ldr *Loader) walkLine(schema *Schema, line string, index int, fn func(*Schema, Row) error) error {
	row, err := ldr.format.SplitRow(line)
	if err != nil {
		return err
	}
	if row.ID == "" || len(row.Values) != schema.Tissues {
		return &RowCountError{Line: index + 4, Expected: schema.Tissues, Found: len(row.Values)}
	}
	return fn(schema, row)
}

func skippable(err error) bool {
	var (
		rowCount  *RowCountError
		parse     *ValueParseError
		duplicate *DuplicateIDError
	)
	return errors.As(err, &rowCount) || errors.As(err, &parse) || errors.As(err, &duplicate)
}
