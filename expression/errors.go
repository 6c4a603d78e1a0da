// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import "fmt"

// FormatError reports a malformed header block.
type FormatError struct {
	Line     int // 1-based line number, 0 if the input ended early
	Reason   string
	Expected int
	Found    int
}

func (e *FormatError) Error() string {
	msg := "format error"
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Expected != 0 || e.Found != 0 {
		msg += fmt.Sprintf(": expected %d, found %d", e.Expected, e.Found)
	}
	return msg
}

// RowCountError reports a data row whose value count does not match
// the declared tissue count.
type RowCountError struct {
	Line     int
	Expected int
	Found    int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("line %d: wrong number of values with respect to the header: expected %d, found %d", e.Line, e.Expected, e.Found)
}

// ValueParseError reports a value token that is not a number.
type ValueParseError struct {
	ID    string
	Token string
	Err   error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("invalid value for gene %s: %q", e.ID, e.Token)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

// DuplicateIDError reports a gene identifier seen in more than one row.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("row with identifier %q already exists", e.ID)
}

// IOError wraps a read/write failure, or a corrupt persisted store.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
