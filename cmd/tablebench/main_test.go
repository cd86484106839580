// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	out := new(bytes.Buffer)
	o, ok := parse(out, []string{"tablebench"})
	require.True(t, ok)
	require.Equal(t, options{
		N:      500000,
		Prefix: "china",
		Every:  50,
		Keys:   "seq",
	}, o)
	require.Empty(t, out.String())
}

func TestParseFlags(t *testing.T) {
	out := new(bytes.Buffer)
	o, ok := parse(out, []string{
		"tablebench", "-n", "10", "-prefix", "x", "-every", "3",
		"-keys", "uuid", "-config", "t.yaml", "-debug",
	})
	require.True(t, ok)
	require.Equal(t, options{
		N:          10,
		Prefix:     "x",
		Every:      3,
		Keys:       "uuid",
		ConfigPath: "t.yaml",
		Debug:      true,
	}, o)
}

func TestParseInvalid(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown_flag": {"tablebench", "-bogus"},
		"negative_n":   {"tablebench", "-n", "-1"},
		"negative_k":   {"tablebench", "-every", "-5"},
		"bad_keys":     {"tablebench", "-keys", "random"},
	} {
		t.Run(name, func(t *testing.T) {
			out := new(bytes.Buffer)
			_, ok := parse(out, args)
			require.False(t, ok)
			require.Contains(t, out.String(), "usage: tablebench [flags]")
		})
	}
}

func testLogger(w *bytes.Buffer) log.Logger {
	return log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.IOWriter{Writer: w},
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(p, []byte("size: 2\nhash: xxh3\n"), 0o644))

	out := new(bytes.Buffer)
	ok := run(testLogger(out), options{
		N:          1000,
		Prefix:     "china",
		Every:      50,
		Keys:       "seq",
		ConfigPath: p,
		Debug:      true,
	})
	require.True(t, ok, out.String())
	require.Contains(t, out.String(), `"store":"hashtable"`)
	require.Contains(t, out.String(), `"store":"map"`)
	require.Contains(t, out.String(), `"deleted":19`)
	require.Contains(t, out.String(), `hashtable rehashed`)
	require.Contains(t, out.String(), `"message":"hashtable shape"`)
}

func TestRunUUID(t *testing.T) {
	out := new(bytes.Buffer)
	ok := run(testLogger(out), options{N: 200, Every: 10, Keys: "uuid"})
	require.True(t, ok, out.String())
	require.Contains(t, out.String(), `"deleted":19`)
}

func TestRunBadConfig(t *testing.T) {
	out := new(bytes.Buffer)
	ok := run(testLogger(out), options{N: 10, Keys: "seq",
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.False(t, ok)
	require.Contains(t, out.String(), "reading table config")
}
