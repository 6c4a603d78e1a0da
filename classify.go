// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"flag"
	"fmt"
	"io"

	"github.com/gtexdge/gtexdge/expression"
	log "github.com/sirupsen/logrus"
)

type classifier struct {
	inputFilename  string
	outputFilename string
	format         string
	config         expression.LoaderConfig
}

func (cmd *classifier) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cmd.inputFilename, "i", "-", "input GCT `file` (may be gzipped)")
	flags.StringVar(&cmd.outputFilename, "o", "-", "output store `file`")
	flags.StringVar(&cmd.format, "format", "", "store `format`, gob or yaml (default: yaml if -o ends in .yaml or .yml, otherwise gob)")
	flags.Float64Var(&cmd.config.Threshold, "threshold", expression.DefaultThreshold, "z-score `cutoff` for up/down regulation (sign is ignored)")
	flags.IntVar(&cmd.config.MaxRows, "n-max", 0, "read at most `N` genes (0 = all)")
	flags.BoolVar(&cmd.config.SkipInvalid, "skip-invalid", false, "skip malformed or duplicate rows instead of failing")
	loglevel := flags.String("loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() > 0 {
		err = fmt.Errorf("unexpected arguments: %q", flags.Args())
		return 2
	} else if cmd.config.MaxRows < 0 {
		err = fmt.Errorf("invalid -n-max %d: must not be negative", cmd.config.MaxRows)
		return 2
	}

	lvl, err := log.ParseLevel(*loglevel)
	if err != nil {
		return 2
	}
	log.SetLevel(lvl)

	format, err := storeFormat(cmd.format, cmd.outputFilename)
	if err != nil {
		return 2
	}

	input, err := zopen(cmd.inputFilename, stdin)
	if err != nil {
		return 1
	}
	defer input.Close()

	loader := expression.NewLoader(cmd.config)
	log.Infof("classifying %s with threshold %g", cmd.inputFilename, loader.Threshold())
	store, err := loader.Load(input)
	if err != nil {
		err = fmt.Errorf("%s: %w", cmd.inputFilename, err)
		return 1
	}
	err = input.Close()
	if err != nil {
		return 1
	}

	var up, down, dge int
	for _, res := range store.Results() {
		up += len(res.Up)
		down += len(res.Down)
		if len(res.Up)+len(res.Down) > 0 {
			dge++
		}
	}
	log.Infof("classified %d genes across %d tissues: %d differentially expressed (%d up, %d down calls)", store.Len(), store.Schema().Tissues, dge, up, down)

	err = writeStore(cmd.outputFilename, format, stdout, store)
	if err != nil {
		return 1
	}
	return 0
}
