// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema describes the columns of an expression matrix. The first
// two column names are the identifier and label columns; the rest
// are tissue names, in the same order as each row's values.
type Schema struct {
	Version     string   `json:"version"`
	Rows        int      `json:"rows"`
	Tissues     int      `json:"tissues"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
}

// TissueNames returns the tissue columns (everything after the
// identifier and label columns).
func (s *Schema) TissueNames() []string {
	return s.ColumnNames[2:]
}

// ParseSchema reads exactly three lines from lines -- version, size,
// and header -- and returns the resulting schema.
func ParseSchema(lines LineReader) (*Schema, error) {
	var header [3]string
	for i := range header {
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return nil, &IOError{Op: "read header", Err: err}
			}
			return nil, &FormatError{Reason: "not enough header lines", Expected: len(header), Found: i}
		}
		header[i] = lines.Text()
	}

	sizes := strings.Fields(header[1])
	if len(sizes) < 2 {
		return nil, &FormatError{Line: 2, Reason: "size line needs row and tissue counts", Expected: 2, Found: len(sizes)}
	}
	rows, err := parseCount(sizes[0])
	if err != nil {
		return nil, &FormatError{Line: 2, Reason: fmt.Sprintf("invalid row count %q", sizes[0])}
	}
	tissues, err := parseCount(sizes[1])
	if err != nil {
		return nil, &FormatError{Line: 2, Reason: fmt.Sprintf("invalid tissue count %q", sizes[1])}
	}

	columns := tissues + 2
	names := strings.Fields(header[2])
	if len(names) != columns {
		return nil, &FormatError{Line: 3, Reason: "wrong number of header columns", Expected: columns, Found: len(names)}
	}
	return &Schema{
		Version:     header[0],
		Rows:        rows,
		Tissues:     tissues,
		Columns:     columns,
		ColumnNames: names,
	}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
