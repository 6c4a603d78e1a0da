// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// converter rewrites a store in the other persisted form.
type converter struct{}

func (cmd *converter) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input store `file` (either form)")
	outputFilename := flags.String("o", "-", "output store `file`")
	formatFlag := flags.String("format", "", "output `format`, gob or yaml (default: yaml if -o ends in .yaml or .yml, otherwise gob)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	format, err := storeFormat(*formatFlag, *outputFilename)
	if err != nil {
		return 2
	}

	store, err := readStore(*inputFilename, stdin)
	if err != nil {
		return 1
	}
	log.Debugf("converting %d genes to %s", store.Len(), format)
	err = writeStore(*outputFilename, format, stdout, store)
	if err != nil {
		return 1
	}
	return 0
}
