// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/gtexdge/gtexdge/expression"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// exportSQLite loads a store into a SQLite database so calls can be
// queried with SQL.
type exportSQLite struct{}

func (cmd *exportSQLite) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input store `file` (either form)")
	outputFilename := flags.String("o", "", "output SQLite database `file`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if *outputFilename == "" {
		err = errors.New("cannot export without -o argument")
		return 2
	}

	store, err := readStore(*inputFilename, stdin)
	if err != nil {
		return 1
	}
	db, err := sql.Open("sqlite", *outputFilename)
	if err != nil {
		err = fmt.Errorf("open sqlite: %w", err)
		return 1
	}
	defer db.Close()
	err = writeSQLite(db, store)
	if err != nil {
		return 1
	}
	err = db.Close()
	if err != nil {
		return 1
	}
	log.Infof("exported %d genes to %s", store.Len(), *outputFilename)
	return 0
}

var sqliteTables = []string{
	`DROP TABLE IF EXISTS matrix_schema`,
	`DROP TABLE IF EXISTS tissues`,
	`DROP TABLE IF EXISTS regulation`,
	`CREATE TABLE matrix_schema (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	`CREATE TABLE tissues (position INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE regulation (
		gene_id TEXT NOT NULL,
		label TEXT NOT NULL,
		tissue TEXT NOT NULL,
		z_score REAL NOT NULL,
		direction TEXT NOT NULL CHECK (direction IN ('up', 'down'))
	)`,
	`CREATE INDEX regulation_gene ON regulation (gene_id)`,
}

func writeSQLite(db *sql.DB, store *expression.Store) (retErr error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, stmt := range sqliteTables {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	schema := store.Schema()
	for _, kv := range [][2]string{
		{"version", schema.Version},
		{"rows", strconv.Itoa(schema.Rows)},
		{"tissues", strconv.Itoa(schema.Tissues)},
		{"id_column", schema.ColumnNames[0]},
		{"label_column", schema.ColumnNames[1]},
	} {
		if _, err := tx.Exec(`INSERT INTO matrix_schema (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert schema: %w", err)
		}
	}
	for i, name := range schema.TissueNames() {
		if _, err := tx.Exec(`INSERT INTO tissues (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert tissue: %w", err)
		}
	}
	insert, err := tx.Prepare(`INSERT INTO regulation (gene_id, label, tissue, z_score, direction) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insert.Close()
	for _, res := range store.Results() {
		for _, call := range []struct {
			direction string
			scores    []expression.TissueScore
		}{{"up", res.Up}, {"down", res.Down}} {
			for _, ts := range call.scores {
				if _, err := insert.Exec(res.ID, res.Label, ts.Tissue, ts.ZScore, call.direction); err != nil {
					return fmt.Errorf("insert %s: %w", res.ID, err)
				}
			}
		}
	}
	return tx.Commit()
}
