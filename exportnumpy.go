// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/gtexdge/gtexdge/expression"
	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
)

// exportNumpy writes the genes x tissues z-score matrix as a .npy
// file, rows in input order.
type exportNumpy struct{}

func (cmd *exportNumpy) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
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
	labelsFilename := flags.String("output-labels", "", "write row labels (index,id,label) to csv `file`")
	tissuesFilename := flags.String("output-tissues", "", "write column labels (index,tissue) to csv `file`")
	maxRows := flags.Int("n-max", 0, "read at most `N` genes (0 = all)")
	skipInvalid := flags.Bool("skip-invalid", false, "skip malformed or duplicate rows instead of failing")
	loglevel := flags.String("loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if *maxRows < 0 {
		err = fmt.Errorf("invalid -n-max %d: must not be negative", *maxRows)
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
	zmat, err := zscoreMatrix(input, expression.LoaderConfig{MaxRows: *maxRows, SkipInvalid: *skipInvalid})
	if err != nil {
		err = fmt.Errorf("%s: %w", *inputFilename, err)
		return 1
	}
	err = input.Close()
	if err != nil {
		return 1
	}
	log.Infof("writing %d x %d z-score matrix", len(zmat.rows), zmat.cols)

	output, err := zcreate(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	npw, err := gonpy.NewWriter(nopCloser{output})
	if err != nil {
		return 1
	}
	npw.Shape = []int{len(zmat.rows), zmat.cols}
	err = npw.WriteFloat64(zmat.data)
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}

	if *labelsFilename != "" {
		labels := make([][]string, len(zmat.rows))
		for i, row := range zmat.rows {
			labels[i] = []string{strconv.Itoa(i), row.ID, row.Label}
		}
		err = writeCSV(*labelsFilename, stdout, labels)
		if err != nil {
			return 1
		}
	}
	if *tissuesFilename != "" {
		labels := make([][]string, len(zmat.tissues))
		for i, tissue := range zmat.tissues {
			labels[i] = []string{strconv.Itoa(i), tissue}
		}
		err = writeCSV(*tissuesFilename, stdout, labels)
		if err != nil {
			return 1
		}
	}
	return 0
}

type zscores struct {
	tissues []string
	rows    []expression.Row // Values dropped
	cols    int
	data    []float64 // row-major
}

func zscoreMatrix(input io.Reader, cfg expression.LoaderConfig) (*zscores, error) {
	zmat := &zscores{}
	seen := map[string]bool{}
	schema, err := expression.NewLoader(cfg).Walk(expression.NewLineReader(input), func(schema *expression.Schema, row expression.Row) error {
		if seen[row.ID] {
			return &expression.DuplicateIDError{ID: row.ID}
		}
		seen[row.ID] = true
		zmat.data = append(zmat.data, expression.Describe(row.Values).ZScores(row.Values)...)
		zmat.rows = append(zmat.rows, expression.Row{ID: row.ID, Label: row.Label})
		return nil
	})
	if err != nil {
		return nil, err
	}
	zmat.tissues = schema.TissueNames()
	zmat.cols = schema.Tissues
	return zmat, nil
}

func writeCSV(fnm string, stdout io.Writer, records [][]string) error {
	f, err := zcreate(fnm, stdout)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	err = w.WriteAll(records)
	if err != nil {
		return err
	}
	return f.Close()
}
