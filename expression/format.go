// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"bufio"
	"io"
)

// LineReader yields decoded text lines one at a time. A
// *bufio.Scanner satisfies it.
type LineReader interface {
	Scan() bool
	Text() string
	Err() error
}

// NewLineReader returns a LineReader over r that tolerates very long
// rows (wide matrices).
func NewLineReader(r io.Reader) LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<26)
	return scanner
}

// Format parses one matrix layout: a fixed leading block that
// describes the columns, followed by one gene per line.
type Format interface {
	// ParseSchema consumes the leading block from lines.
	ParseSchema(lines LineReader) (*Schema, error)
	// SplitRow parses one data line. It does not check the
	// number of values against the schema.
	SplitRow(line string) (Row, error)
}

// GCT is the three-line-header layout used by GTEx median TPM
// files:
//
//	#1.2
//	<rows> <tissues>
//	Name Description <tissue> ...
//	<id> <label> <value> ...
type GCT struct{}

func (GCT) ParseSchema(lines LineReader) (*Schema, error) {
	return ParseSchema(lines)
}

func (GCT) SplitRow(line string) (Row, error) {
	return SplitRow(line)
}
