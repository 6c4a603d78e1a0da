// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"bytes"
	"database/sql"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestStats(c *check.C) {
	var out bytes.Buffer
	exited := (&statscmd{}).RunCommand("stats", []string{"-i", "testdata/sample.gct"}, &bytes.Buffer{}, &out, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	c.Check(out.String(), check.Equals, `id	label	mean	sd	min	max
ENSG00000223972.5	DDX11L1	0.000	0.000	0.000	0.000
ENSG00000227232.5	WASH7P	3.356	1.212	1.600	5.500
ENSG00000134184.12	GSTM1	19.617	33.976	1.900	95.400
ENSG00000100197.21	CYP2D6	7.183	14.767	0.300	40.200
ENSG00000244734.3	HBB	16856.117	37184.361	5.200	100000.000
`)

	out.Reset()
	stderr := &bytes.Buffer{}
	exited = (&statscmd{}).RunCommand("stats", []string{"-loglevel=error"}, strings.NewReader("#1.2\n1\t2\nName\tDescription\tA\tB\ng1\tx\t1\tNA\n"), &out, stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Equals, "-: invalid value for gene g1: \"NA\"\n")
}

func (s *exportSuite) TestExportSQLite(c *check.C) {
	tmpdir := c.MkDir()
	exited := (&classifier{}).RunCommand("classify", []string{"-i", "testdata/sample.gct", "-threshold=1.4", "-o", tmpdir + "/store.gob"}, &bytes.Buffer{}, os.Stderr, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	for i := 0; i < 2; i++ {
		// second run replaces the tables
		exited = (&exportSQLite{}).RunCommand("export-sqlite", []string{"-i", tmpdir + "/store.gob", "-o", tmpdir + "/calls.db"}, &bytes.Buffer{}, os.Stderr, os.Stderr)
		c.Assert(exited, check.Equals, 0)
	}

	db, err := sql.Open("sqlite", tmpdir+"/calls.db")
	c.Assert(err, check.IsNil)
	defer db.Close()

	var version string
	err = db.QueryRow(`SELECT value FROM matrix_schema WHERE key = 'version'`).Scan(&version)
	c.Assert(err, check.IsNil)
	c.Check(version, check.Equals, "#1.2")

	var ntissues int
	err = db.QueryRow(`SELECT COUNT(*) FROM tissues`).Scan(&ntissues)
	c.Assert(err, check.IsNil)
	c.Check(ntissues, check.Equals, 6)

	rows, err := db.Query(`SELECT label, tissue, direction FROM regulation ORDER BY gene_id, direction, tissue`)
	c.Assert(err, check.IsNil)
	defer rows.Close()
	var calls []string
	for rows.Next() {
		var label, tissue, direction string
		c.Assert(rows.Scan(&label, &tissue, &direction), check.IsNil)
		calls = append(calls, label+" "+direction+" "+tissue)
	}
	c.Assert(rows.Err(), check.IsNil)
	c.Check(calls, check.DeepEquals, []string{
		"CYP2D6 up Liver",
		"GSTM1 up Liver",
		"WASH7P down Muscle_Skeletal",
		"WASH7P up Lung",
		"HBB up Whole_Blood",
	})
}

func (s *exportSuite) TestExportSQLiteUsage(c *check.C) {
	stderr := &bytes.Buffer{}
	exited := (&exportSQLite{}).RunCommand("export-sqlite", nil, &bytes.Buffer{}, ioutil.Discard, stderr)
	c.Check(exited, check.Equals, 2)
	c.Check(stderr.String(), check.Equals, "cannot export without -o argument\n")
}

func (s *exportSuite) TestNegativeMaxRows(c *check.C) {
	for _, handler := range []interface {
		RunCommand(string, []string, io.Reader, io.Writer, io.Writer) int
	}{&statscmd{}, &exportNumpy{}} {
		stderr := &bytes.Buffer{}
		exited := handler.RunCommand("gtexdge", []string{"-i", "testdata/sample.gct", "-n-max=-3"}, &bytes.Buffer{}, ioutil.Discard, stderr)
		c.Check(exited, check.Equals, 2)
		c.Check(stderr.String(), check.Equals, "invalid -n-max -3: must not be negative\n")
	}
}
