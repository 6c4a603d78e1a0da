// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gtexdge/gtexdge/expression"
)

type dumpStore struct{}

func (cmd *dumpStore) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input store `file`")
	outputFilename := flags.String("o", "-", "output `file`")
	dgeOnly := flags.Bool("dge-only", false, "only list genes with at least one up- or down-regulated tissue")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}

	store, err := readStore(*inputFilename, stdin)
	if err != nil {
		return 1
	}
	output, err := zcreate(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	schema := store.Schema()
	fmt.Fprintf(bufw, "version %q, %d tissues, %d rows declared\n", schema.Version, schema.Tissues, schema.Rows)
	var n, nUp, nDown int
	for _, res := range store.Results() {
		if *dgeOnly && len(res.Up) == 0 && len(res.Down) == 0 {
			continue
		}
		n++
		nUp += len(res.Up)
		nDown += len(res.Down)
		fmt.Fprintf(bufw, "%s\t%s\tup=%s\tdown=%s\n", res.ID, res.Label, formatScores(res.Up), formatScores(res.Down))
	}
	fmt.Fprintf(bufw, "total: genes %d, up %d, down %d\n", n, nUp, nDown)
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	return 0
}

func formatScores(scores []expression.TissueScore) string {
	if len(scores) == 0 {
		return "-"
	}
	parts := make([]string, len(scores))
	for i, ts := range scores {
		parts[i] = fmt.Sprintf("%s:%.3f", ts.Tissue, ts.ZScore)
	}
	return strings.Join(parts, ",")
}
