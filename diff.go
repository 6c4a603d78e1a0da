// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gtexdge/gtexdge/expression"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffStores prints a line diff of the text forms of two stores.
type diffStores struct{}

func (cmd *diffStores) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	context := flags.Bool("context", false, "also print unchanged lines")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() != 2 {
		err = errors.New("usage: diff [-context] a.store b.store")
		return 2
	} else if flags.Arg(0) == "-" && flags.Arg(1) == "-" {
		err = errors.New("cannot read both stores from stdin")
		return 2
	}

	var text [2]string
	th := throttle{Max: 2}
	for i, fnm := range flags.Args() {
		i, fnm := i, fnm
		th.Go(func() error {
			store, err := readStore(fnm, stdin)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			err = expression.WriteText(&buf, store)
			if err != nil {
				return err
			}
			text[i] = buf.String()
			return nil
		})
	}
	err = th.Wait()
	if err != nil {
		return 1
	}

	bufw := bufio.NewWriter(stdout)
	writeLineDiff(bufw, text[0], text[1], *context)
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	return 0
}

// writeLineDiff writes the lines removed from a ("-"), added in b
// ("+"), and, if context is true, unchanged (" ").
func writeLineDiff(w io.Writer, a, b string, context bool) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			if !context {
				continue
			}
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, prefix, strings.TrimSuffix(line, "\n"), "\n")
		}
	}
}
