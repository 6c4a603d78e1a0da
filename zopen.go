// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/gtexdge/gtexdge/expression"
	"github.com/klauspost/pgzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// zopen returns a reader for the given file ("-" means stdin),
// transparently decompressing the input if it is gzipped.
func zopen(fnm string, stdin io.Reader) (io.ReadCloser, error) {
	var f io.ReadCloser
	if fnm == "-" {
		f = ioutil.NopCloser(stdin)
	} else {
		var err error
		f, err = os.Open(fnm)
		if err != nil {
			return nil, err
		}
	}
	bufr := bufio.NewReaderSize(f, 4*1024*1024)
	head, err := bufr.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}
	if !bytes.Equal(head, gzipMagic) {
		return readCloser{bufr, f}, nil
	}
	rdr, err := pgzip.NewReader(bufr)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return gzipr{rdr, f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// zcreate returns a buffered writer for the given file ("-" means
// stdout), compressing the output if fnm ends with ".gz". Close must
// be called to flush it.
func zcreate(fnm string, stdout io.Writer) (io.WriteCloser, error) {
	var f io.WriteCloser
	if fnm == "-" {
		f = nopCloser{stdout}
	} else {
		var err error
		f, err = os.OpenFile(fnm, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			return nil, err
		}
	}
	zw := &zwriter{f: f, bufw: bufio.NewWriterSize(f, 4*1024*1024)}
	if strings.HasSuffix(fnm, ".gz") {
		zw.gzw = pgzip.NewWriter(zw.bufw)
	}
	return zw, nil
}

type zwriter struct {
	f      io.WriteCloser
	bufw   *bufio.Writer
	gzw    *pgzip.Writer
	closed bool
}

func (zw *zwriter) Write(p []byte) (int, error) {
	if zw.gzw != nil {
		return zw.gzw.Write(p)
	}
	return zw.bufw.Write(p)
}

func (zw *zwriter) Close() error {
	if zw.closed {
		return nil
	}
	zw.closed = true
	if zw.gzw != nil {
		if err := zw.gzw.Close(); err != nil {
			zw.f.Close()
			return err
		}
	}
	if err := zw.bufw.Flush(); err != nil {
		zw.f.Close()
		return err
	}
	return zw.f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

const (
	formatBinary = "gob"
	formatText   = "yaml"
)

// storeFormat returns the persisted form to write: the explicit
// -format value if given, otherwise yaml for *.yaml/*.yml (optionally
// gzipped) and gob for anything else.
func storeFormat(format, fnm string) (string, error) {
	switch format {
	case formatBinary, "binary":
		return formatBinary, nil
	case formatText, "text":
		return formatText, nil
	case "":
		base := strings.TrimSuffix(fnm, ".gz")
		if strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml") {
			return formatText, nil
		}
		return formatBinary, nil
	default:
		return "", fmt.Errorf("unknown store format %q", format)
	}
}

func readStore(fnm string, stdin io.Reader) (*expression.Store, error) {
	input, err := zopen(fnm, stdin)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	store, err := expression.ReadStore(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return store, nil
}

func writeStore(fnm, format string, stdout io.Writer, store *expression.Store) error {
	output, err := zcreate(fnm, stdout)
	if err != nil {
		return err
	}
	if format == formatText {
		err = expression.WriteText(output, store)
	} else {
		err = expression.WriteBinary(output, store)
	}
	if err != nil {
		output.Close()
		return err
	}
	return output.Close()
}
