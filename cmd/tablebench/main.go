// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tablebench runs the reference workload against
// hashtable.Table and Go's builtin map and logs the timings.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aristanetworks/hashtable"
	"github.com/aristanetworks/hashtable/internal/workload"
	"github.com/phuslu/log"
)

type options struct {
	N          int
	Prefix     string
	Every      int
	Keys       string
	ConfigPath string
	Debug      bool
}

// parse returns ok=false when the process should exit with status 2,
// after usage or an error has been written to w.
func parse(w io.Writer, args []string) (o options, ok bool) {
	name := "tablebench"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		fmt.Fprintf(w, "usage: %s [flags]\n\nflags:\n", name)
		flags.PrintDefaults()
	}
	flags.IntVar(&o.N, "n", 500000, "number of keys")
	flags.StringVar(&o.Prefix, "prefix", "china", "key prefix for seq keys")
	flags.IntVar(&o.Every, "every", 50, "delete every n-th key during verification (0 disables)")
	flags.StringVar(&o.Keys, "keys", "seq", "key generator: seq or uuid")
	flags.StringVar(&o.ConfigPath, "config", "", "YAML table config `path`")
	flags.BoolVar(&o.Debug, "debug", false, "log rehash events")
	if err := flags.Parse(args); err != nil {
		// flags has already printed the error and usage.
		return o, false
	}
	switch {
	case o.N < 0:
		fmt.Fprintln(w, "-n must not be negative")
	case o.Every < 0:
		fmt.Fprintln(w, "-every must not be negative")
	case o.Keys != "seq" && o.Keys != "uuid":
		fmt.Fprintf(w, "unknown key generator %q\n", o.Keys)
	default:
		return o, true
	}
	flags.Usage()
	return o, false
}

func readConfig(path string) (hashtable.Config, error) {
	if path == "" {
		return hashtable.Config{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return hashtable.Config{}, fmt.Errorf("reading table config: %w", err)
	}
	defer f.Close()
	return hashtable.ReadConfig(f)
}

// run executes the workload and reports whether every store passed.
func run(l log.Logger, o options) bool {
	c, err := readConfig(o.ConfigPath)
	if err != nil {
		l.Error().Err(err).Msg("config")
		return false
	}
	if o.Debug {
		tl := l
		tl.Level = log.DebugLevel
		c.Logger = &tl
	}

	var keys []string
	if o.Keys == "uuid" {
		keys = workload.UUIDKeys(o.N)
	} else {
		keys = workload.Keys(o.Prefix, o.N)
	}

	ts, err := workload.NewTableStore(c)
	if err != nil {
		l.Error().Err(err).Msg("table")
		return false
	}

	ok := true
	for _, s := range []struct {
		name  string
		store workload.Store
	}{
		{"hashtable", ts},
		{"map", workload.MapStore{}},
	} {
		r, err := workload.Run(s.name, s.store, keys, o.Every)
		if err != nil {
			l.Error().Str("store", s.name).Err(err).Msg("workload failed")
			ok = false
			continue
		}
		l.Info().
			Str("store", r.Name).
			Int("keys", r.Keys).
			Int("deleted", r.Deleted).
			Dur("insert", r.Insert).
			Dur("verify", r.Verify).
			Dur("total", r.Total()).
			Msg(r.String())
	}

	st := ts.Stats()
	l.Info().
		Int("buckets", st.Buckets).
		Int("occupied", st.OccupiedBuckets).
		Int("longest_chain", st.LongestChain).
		Int("rehashes", st.Rehashes).
		Float64("load_factor", st.LoadFactor()).
		Msg("hashtable shape")
	return ok
}

func main() {
	o, ok := parse(os.Stderr, os.Args)
	if !ok {
		os.Exit(2)
	}
	l := log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}
	if !run(l, o) {
		os.Exit(1)
	}
}

