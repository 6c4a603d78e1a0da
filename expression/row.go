// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"strconv"
	"strings"
)

// Row is one parsed data line: a gene identifier, its display label,
// and one expression value (TPM) per tissue.
type Row struct {
	ID     string
	Label  string
	Values []float64
}

// SplitRow splits a whitespace-separated data line into identifier,
// label, and values. If a value does not parse, the whole row is
// rejected with a *ValueParseError.
//
// A line with fewer than two fields yields a Row with no values; the
// caller's value count check reports it.
func SplitRow(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		var row Row
		if len(fields) == 1 {
			row.ID = fields[0]
		}
		return row, nil
	}
	row := Row{ID: fields[0], Label: fields[1]}
	values := make([]float64, 0, len(fields)-2)
	for _, tok := range fields[2:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Row{}, &ValueParseError{ID: row.ID, Token: tok, Err: err}
		}
		values = append(values, v)
	}
	row.Values = values
	return row, nil
}
