// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workload drives a key/value store through the reference
// workload: insert n generated keys, then walk them again deleting
// every k-th key and verifying the rest.
package workload

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/aristanetworks/hashtable"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ErrMismatch is wrapped by every verification failure.
var ErrMismatch = errors.New("workload: verification failed")

// Store is the surface the workload needs from a container.
type Store interface {
	Insert(key string, value int) (bool, error)
	Get(key string) (int, bool)
	Delete(key string) bool
	Len() int
}

// TableStore adapts a hashtable.Table.
type TableStore struct {
	*hashtable.Table[int]
}

// NewTableStore builds a TableStore from c.
func NewTableStore(c hashtable.Config) (TableStore, error) {
	t, err := hashtable.NewConfig[int](c)
	if err != nil {
		return TableStore{}, err
	}
	return TableStore{t}, nil
}

// MapStore adapts Go's builtin map for reference.
type MapStore map[string]int

func (m MapStore) Insert(key string, value int) (bool, error) {
	if _, ok := m[key]; ok {
		return false, nil
	}
	m[key] = value
	return true, nil
}

func (m MapStore) Get(key string) (int, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStore) Delete(key string) bool {
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

func (m MapStore) Len() int { return len(m) }

// Keys returns n keys of the form "<prefix>_<i>".
func Keys(prefix string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = prefix + "_" + strconv.Itoa(i)
	}
	return keys
}

// UUIDKeys returns n random UUID strings.
func UUIDKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	return keys
}

// Result describes one run.
type Result struct {
	Name      string
	Keys      int
	Deleted   int
	Len       int
	Insert    time.Duration
	Verify    time.Duration
	HeapAlloc uint64
}

// Total returns the wall-clock time of both passes.
func (r Result) Total() time.Duration {
	return r.Insert + r.Verify
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s keys, %s deleted, insert %s, verify %s, heap %s",
		r.Name,
		humanize.Comma(int64(r.Keys)),
		humanize.Comma(int64(r.Deleted)),
		r.Insert, r.Verify,
		humanize.Bytes(r.HeapAlloc))
}

// Run inserts keys[i] with value i, then walks keys again: when
// every > 0, i > 0 and i%every == 0 the key is deleted and must be
// gone afterwards, otherwise its value must still be i. Run stops at
// the first failure.
func Run(name string, s Store, keys []string, every int) (Result, error) {
	r := Result{Name: name, Keys: len(keys)}

	start := time.Now()
	for i, k := range keys {
		ok, err := s.Insert(k, i)
		if err != nil {
			return r, fmt.Errorf("inserting %q: %w", k, err)
		}
		if !ok {
			return r, fmt.Errorf("%w: %q inserted twice", ErrMismatch, k)
		}
	}
	r.Insert = time.Since(start)

	start = time.Now()
	for i, k := range keys {
		if every > 0 && i > 0 && i%every == 0 {
			if !s.Delete(k) {
				return r, fmt.Errorf("%w: %q missing before delete", ErrMismatch, k)
			}
			if _, ok := s.Get(k); ok {
				return r, fmt.Errorf("%w: %q found after delete", ErrMismatch, k)
			}
			r.Deleted++
			continue
		}
		v, ok := s.Get(k)
		if !ok {
			return r, fmt.Errorf("%w: %q missing", ErrMismatch, k)
		}
		if v != i {
			return r, fmt.Errorf("%w: %q holds %d, expected %d", ErrMismatch, k, v, i)
		}
	}
	r.Verify = time.Since(start)
	r.Len = s.Len()
	if want := len(keys) - r.Deleted; r.Len != want {
		return r, fmt.Errorf("%w: %d keys left, expected %d", ErrMismatch, r.Len, want)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	r.HeapAlloc = ms.HeapAlloc
	return r, nil
}
