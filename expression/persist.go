// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"errors"
	"io"

	"github.com/ghodss/yaml"
	"golang.org/x/crypto/blake2b"
)

// binaryMagic starts every binary store; a blake2b-256 sum of the
// gob payload ends it.
var binaryMagic = []byte("GTEXDGE\x01")

// storeFile is the on-disk shape of a Store, shared by the binary
// and text forms. Genes are sorted by identifier.
type storeFile struct {
	Schema Schema   `json:"schema"`
	Genes  []Result `json:"genes"`
}

func (s *Store) file() storeFile {
	f := storeFile{Schema: *s.schema}
	for _, res := range s.Results() {
		f.Genes = append(f.Genes, *res)
	}
	return f
}

func (f *storeFile) store() (*Store, error) {
	results := make([]*Result, len(f.Genes))
	for i := range f.Genes {
		results[i] = &f.Genes[i]
	}
	schema := f.Schema
	if len(schema.ColumnNames) != schema.Tissues+2 || schema.Columns != schema.Tissues+2 {
		return nil, &IOError{Op: "decode store", Err: errors.New("schema column count does not match tissue count")}
	}
	s, err := NewStore(&schema, results)
	if err != nil {
		return nil, &IOError{Op: "decode store", Err: err}
	}
	return s, nil
}

// WriteBinary writes s to w in the compact binary form.
func WriteBinary(w io.Writer, s *Store) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(s.file()); err != nil {
		return &IOError{Op: "encode store", Err: err}
	}
	sum := blake2b.Sum256(payload.Bytes())
	for _, buf := range [][]byte{binaryMagic, payload.Bytes(), sum[:]} {
		if _, err := w.Write(buf); err != nil {
			return &IOError{Op: "write store", Err: err}
		}
	}
	return nil
}

// ReadBinary reads a store written by WriteBinary.
func ReadBinary(r io.Reader) (*Store, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read store", Err: err}
	}
	if len(buf) < len(binaryMagic)+blake2b.Size256 || !bytes.HasPrefix(buf, binaryMagic) {
		return nil, &IOError{Op: "read store", Err: errors.New("not a binary store, or truncated")}
	}
	payload := buf[len(binaryMagic) : len(buf)-blake2b.Size256]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(sum[:], buf[len(buf)-blake2b.Size256:]) {
		return nil, &IOError{Op: "read store", Err: errors.New("checksum mismatch")}
	}
	var f storeFile
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&f); err != nil {
		return nil, &IOError{Op: "decode store", Err: err}
	}
	return f.store()
}

// WriteText writes s to w as YAML.
func WriteText(w io.Writer, s *Store) error {
	buf, err := yaml.Marshal(s.file())
	if err != nil {
		return &IOError{Op: "encode store", Err: err}
	}
	if _, err := w.Write(buf); err != nil {
		return &IOError{Op: "write store", Err: err}
	}
	return nil
}

// ReadText reads a store written by WriteText.
func ReadText(r io.Reader) (*Store, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read store", Err: err}
	}
	var f storeFile
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, &IOError{Op: "decode store", Err: err}
	}
	return f.store()
}

// ReadStore reads either form, telling them apart by the binary
// magic.
func ReadStore(r io.Reader) (*Store, error) {
	bufr := bufio.NewReader(r)
	head, err := bufr.Peek(len(binaryMagic))
	if err != nil && err != io.EOF {
		return nil, &IOError{Op: "read store", Err: err}
	}
	if bytes.Equal(head, binaryMagic) {
		return ReadBinary(bufr)
	}
	return ReadText(bufr)
}
