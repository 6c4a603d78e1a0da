// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"errors"
	"strings"

	"gopkg.in/check.v1"
)

type storeSuite struct{}

var _ = check.Suite(&storeSuite{})

func matrix(rows ...string) string {
	return strings.Join(append([]string{"v1.0", "3 3", " ID SYMBOL T1 T2 T3"}, rows...), "\n")
}

// countingLines records how many lines were pulled from the
// underlying reader.
type countingLines struct {
	LineReader
	scans int
}

func (cl *countingLines) Scan() bool {
	cl.scans++
	return cl.LineReader.Scan()
}

func (s *storeSuite) TestLoad(c *check.C) {
	store, err := NewLoader(LoaderConfig{Threshold: 1.2}).Load(strings.NewReader(matrix(
		"Gene1 Symbol1 1.2 3.4 5.6",
		"Gene2 Symbol2 2.2 4.4 6.6",
		"Gene3 Symbol2 2.2 4.4 6.6",
	)))
	c.Assert(err, check.IsNil)
	c.Check(store.Len(), check.Equals, 3)
	c.Check(store.IDs(), check.DeepEquals, []string{"Gene1", "Gene2", "Gene3"})
	c.Check(store.Schema().TissueNames(), check.DeepEquals, []string{"T1", "T2", "T3"})

	res, ok := store.Get("Gene1")
	c.Assert(ok, check.Equals, true)
	c.Check(res.Label, check.Equals, "Symbol1")
	c.Assert(res.Up, check.HasLen, 1)
	c.Check(res.Up[0].Tissue, check.Equals, "T3")
	c.Assert(res.Down, check.HasLen, 1)
	c.Check(res.Down[0].Tissue, check.Equals, "T1")

	res, ok = store.Get("Gene3")
	c.Assert(ok, check.Equals, true)
	c.Check(res.Label, check.Equals, "Symbol2")

	_, ok = store.Get("Gene4")
	c.Check(ok, check.Equals, false)
}

func (s *storeSuite) TestDefaultThresholdClassifiesNothingSmall(c *check.C) {
	// With three values the largest possible |z| is sqrt(2) < 2.
	store, err := NewLoader(LoaderConfig{}).Load(strings.NewReader(matrix("Gene1 Symbol1 1.2 3.4 5.6")))
	c.Assert(err, check.IsNil)
	res, _ := store.Get("Gene1")
	c.Check(res.Up, check.IsNil)
	c.Check(res.Down, check.IsNil)
}

func (s *storeSuite) TestMaxRows(c *check.C) {
	lines := &countingLines{LineReader: lineReader(matrix(
		"Gene1 Symbol1 1.2 3.4 5.6",
		"Gene2 Symbol2 not-a-number 4.4 6.6",
		"Gene3 Symbol2 2.2",
	))}
	store, err := NewLoader(LoaderConfig{MaxRows: 1, Threshold: 1.2}).LoadLines(lines)
	c.Assert(err, check.IsNil)
	c.Check(store.Len(), check.Equals, 1)
	c.Check(store.IDs(), check.DeepEquals, []string{"Gene1"})
	c.Check(lines.scans, check.Equals, 4)
}

func (s *storeSuite) TestRowCountMismatch(c *check.C) {
	_, err := NewLoader(LoaderConfig{Threshold: 1.2}).Load(strings.NewReader(matrix(
		"Gene1 Symbol1 1.2 3.4 5.6",
		"Gene2 Symbol2 2.2 4.4 ",
		"Gene3 Symbol2 2.2 4.4 6.6",
	)))
	var rerr *RowCountError
	c.Assert(errors.As(err, &rerr), check.Equals, true, check.Commentf("err %v", err))
	c.Check(*rerr, check.Equals, RowCountError{Line: 5, Expected: 3, Found: 2})
	c.Check(err, check.ErrorMatches, `line 5: wrong number of values .*: expected 3, found 2`)
}

func (s *storeSuite) TestBlankLine(c *check.C) {
	_, err := NewLoader(LoaderConfig{}).Load(strings.NewReader(matrix("Gene1 Symbol1 1 2 3", "", "Gene3 Symbol3 1 2 3")))
	var rerr *RowCountError
	c.Assert(errors.As(err, &rerr), check.Equals, true, check.Commentf("err %v", err))
	c.Check(rerr.Line, check.Equals, 5)
}

func (s *storeSuite) TestDuplicateID(c *check.C) {
	for _, rows := range [][]string{
		{"Gene1 Symbol1 1.2 3.4 5.6", "Gene1 Symbol1 2.2 4.4 6.6", "Gene3 Symbol2 22.2 14.4 16.6"},
		{"Gene3 Symbol2 22.2 14.4 16.6", "Gene1 Symbol1 1.2 3.4 5.6", "Gene1 Other 2.2 4.4 6.6"},
	} {
		store, err := NewLoader(LoaderConfig{Threshold: 1.2}).Load(strings.NewReader(matrix(rows...)))
		c.Check(store, check.IsNil)
		var derr *DuplicateIDError
		c.Assert(errors.As(err, &derr), check.Equals, true, check.Commentf("err %v", err))
		c.Check(derr.ID, check.Equals, "Gene1")
		c.Check(err, check.ErrorMatches, `row with identifier "Gene1" already exists`)
	}
}

func (s *storeSuite) TestValueParseAborts(c *check.C) {
	store, err := NewLoader(LoaderConfig{}).Load(strings.NewReader(matrix(
		"Gene1 Symbol1 1.2 3.4 5.6",
		"Gene2 Symbol2 2.2 x4.4 6.6",
	)))
	c.Check(store, check.IsNil)
	var perr *ValueParseError
	c.Assert(errors.As(err, &perr), check.Equals, true)
	c.Check(perr.ID, check.Equals, "Gene2")
	c.Check(perr.Token, check.Equals, "x4.4")
}

func (s *storeSuite) TestEmptyInput(c *check.C) {
	store, err := NewLoader(LoaderConfig{}).Load(strings.NewReader(""))
	c.Check(store, check.IsNil)
	var ferr *FormatError
	c.Check(errors.As(err, &ferr), check.Equals, true)
}

func (s *storeSuite) TestHeaderOnly(c *check.C) {
	store, err := NewLoader(LoaderConfig{}).Load(strings.NewReader(matrix()))
	c.Assert(err, check.IsNil)
	c.Check(store.Len(), check.Equals, 0)
	c.Check(store.Schema().Tissues, check.Equals, 3)
}

func (s *storeSuite) TestConstantRowNotClassified(c *check.C) {
	store, err := NewLoader(LoaderConfig{Threshold: 0.5}).Load(strings.NewReader(matrix("Flat Flat 7 7 7")))
	c.Assert(err, check.IsNil)
	res, ok := store.Get("Flat")
	c.Assert(ok, check.Equals, true)
	c.Check(res.Up, check.IsNil)
	c.Check(res.Down, check.IsNil)
}

func (s *storeSuite) TestSkipInvalid(c *check.C) {
	store, err := NewLoader(LoaderConfig{SkipInvalid: true, Threshold: 1.2}).Load(strings.NewReader(matrix(
		"Gene1 Symbol1 1.2 3.4 5.6",
		"Gene2 Symbol2 2.2 4.4",
		"Gene3 Symbol3 2.2 oops 6.6",
		"Gene1 Again 9 9 1",
		"Gene4 Symbol4 1 2 3",
	)))
	c.Assert(err, check.IsNil)
	c.Check(store.IDs(), check.DeepEquals, []string{"Gene1", "Gene4"})
	res, _ := store.Get("Gene1")
	c.Check(res.Label, check.Equals, "Symbol1")
}

type brokenLines struct {
	LineReader
	after int
}

func (bl *brokenLines) Scan() bool {
	if bl.after == 0 {
		return false
	}
	bl.after--
	return bl.LineReader.Scan()
}

func (bl *brokenLines) Err() error {
	if bl.after == 0 {
		return errors.New("unexpected EOF")
	}
	return nil
}

func (s *storeSuite) TestReadErrorMidStream(c *check.C) {
	lines := &brokenLines{LineReader: lineReader(matrix("Gene1 Symbol1 1 2 3", "Gene2 Symbol2 1 2 3")), after: 4}
	store, err := NewLoader(LoaderConfig{SkipInvalid: true}).LoadLines(lines)
	c.Check(store, check.IsNil)
	var ioerr *IOError
	c.Assert(errors.As(err, &ioerr), check.Equals, true)
	c.Check(err, check.ErrorMatches, `read rows: unexpected EOF`)
}

func (s *storeSuite) TestNewStoreRejectsDuplicates(c *check.C) {
	schema := &Schema{Version: "v", Tissues: 1, Columns: 3, ColumnNames: []string{"id", "label", "t"}}
	_, err := NewStore(schema, []*Result{{ID: "a"}, {ID: "b"}, {ID: "a"}})
	var derr *DuplicateIDError
	c.Assert(errors.As(err, &derr), check.Equals, true)
	c.Check(derr.ID, check.Equals, "a")
}
