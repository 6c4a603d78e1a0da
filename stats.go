// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/gtexdge/gtexdge/expression"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// statscmd prints per-gene descriptive statistics straight from a
// GCT file, without classifying.
type statscmd struct {
	maxRows int
}

func (cmd *statscmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input GCT `file` (may be gzipped)")
	outputFilename := flags.String("o", "-", "output `file`")
	flags.IntVar(&cmd.maxRows, "n-max", 0, "read at most `N` genes (0 = all)")
	loglevel := flags.String("loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if cmd.maxRows < 0 {
		err = fmt.Errorf("invalid -n-max %d: must not be negative", cmd.maxRows)
		return 2
	}
	lvl, err := log.ParseLevel(*loglevel)
	if err != nil {
		return 2
	}
	log.SetLevel(lvl)

	input, err := zopen(*inputFilename, stdin)
	if err != nil {
		return 1
	}
	defer input.Close()
	output, err := zcreate(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()

	err = cmd.doStats(input, output)
	if err != nil {
		err = fmt.Errorf("%s: %w", *inputFilename, err)
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	return 0
}

func (cmd *statscmd) doStats(input io.Reader, output io.Writer) error {
	bufw := bufio.NewWriter(output)
	fmt.Fprint(bufw, "id\tlabel\tmean\tsd\tmin\tmax\n")
	seen := map[string]bool{}
	loader := expression.NewLoader(expression.LoaderConfig{MaxRows: cmd.maxRows})
	_, err := loader.Walk(expression.NewLineReader(input), func(schema *expression.Schema, row expression.Row) error {
		if seen[row.ID] {
			return &expression.DuplicateIDError{ID: row.ID}
		}
		seen[row.ID] = true
		summary := expression.Describe(row.Values)
		min, max := math.NaN(), math.NaN()
		if len(row.Values) > 0 {
			min, max = floats.Min(row.Values), floats.Max(row.Values)
		}
		_, err := fmt.Fprintf(bufw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n", row.ID, row.Label, summary.Mean, summary.StdDev, min, max)
		return err
	})
	if err != nil {
		return err
	}
	return bufw.Flush()
}
