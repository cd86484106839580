// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hashtable provides the Table type, a string-keyed hash
// table with chained collision resolution. Buckets are always a
// prime number in size and the table grows by rehashing into a new
// bucket array roughly twice as big.
//
// The following requirements are the user's responsibility to follow
// when providing a custom Strategy:
//   - Equal(a, b) => Hash(a) == Hash(b)
//   - Equal(a, a) must be true for all values of a.
//   - Hash must be deterministic for the lifetime of the table.
//
// A Table is not safe for concurrent use. Callers that share a Table
// between goroutines must serialize access themselves, for example
// with a single sync.Mutex around every call.
package hashtable

// This file contains the table itself. The data is arranged into a
// slice of chain heads ("buckets"). A key's bucket is its 32-bit
// digest modulo the number of buckets, which is always prime so that
// weak digests still spread across the whole array.
//
// New entries are prepended to their chain. Duplicate keys are
// rejected rather than overwritten, so a chain never holds two equal
// keys and the order inside a chain carries no meaning.
//
// Growth happens up front in Insert, before the key is looked up.
// It is not incremental: every entry is relinked into the new array
// in one pass, so a single Insert may cost O(n). Callers that cannot
// tolerate that pause should size the table with Config.Size.

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/phuslu/log"
)

const (
	// DefaultSize is the bucket count of a table built without an
	// explicit size.
	DefaultSize = 689981

	// DefaultGrowthRatio makes a table grow once it holds more than
	// one key for every two buckets.
	DefaultGrowthRatio = 2

	// DefaultMaxBuckets caps the bucket array at the largest prime
	// that fits in an int32.
	DefaultMaxBuckets = 1<<31 - 1

	// flags
	hashWriting = 1 // a goroutine is writing to the table
)

var (
	// ErrAllocation is returned by Insert when the bucket array
	// cannot grow. The table is left exactly as it was before the
	// call.
	ErrAllocation = errors.New("hashtable: bucket array allocation failed")

	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("hashtable: invalid config")
)

// Table implements a chained hash table keyed by strings.
type Table[V any] struct {
	count    int // # live entries == size of table
	flags    uint8
	rehashes int

	buckets bucketArray[V]

	ratio      int
	maxBuckets int
	alloc      func(nbuckets int) (bucketArray[V], error)
	hash       func(string) uint32
	equal      func(a, b string) bool
	log        *log.Logger
}

type entry[V any] struct {
	key   string
	value V
	next  *entry[V]
}

// bucketArray holds chain heads. len(heads) is always prime.
type bucketArray[V any] struct {
	heads []*entry[V]
	// occupied is the number of non-nil heads.
	occupied int
}

func makeBucketArray[V any](nbuckets int) (a bucketArray[V], err error) {
	defer func() {
		// makeslice panics with a runtime.Error when the length is
		// out of range. A real out of memory condition is fatal and
		// cannot be caught here.
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: %d buckets: %v", ErrAllocation, nbuckets, re)
		}
	}()
	return bucketArray[V]{heads: make([]*entry[V], nbuckets)}, nil
}

func (a *bucketArray[V]) index(hash uint32) int {
	return int(uint64(hash) % uint64(len(a.heads)))
}

// push prepends e to bucket i.
func (a *bucketArray[V]) push(i int, e *entry[V]) {
	if a.heads[i] == nil {
		a.occupied++
	}
	e.next = a.heads[i]
	a.heads[i] = e
}

// KeyValue contains a Key and Value.
type KeyValue[V any] struct {
	Key   string
	Value V
}

// New instantiates a new Table of DefaultSize buckets using s and
// inserts any KeyValues passed, in order. A KeyValue whose key was
// already inserted is ignored. The zero Strategy selects DJB2 and
// KeyEqual.
func New[V any](s Strategy, kvs ...KeyValue[V]) *Table[V] {
	t, err := NewConfig[V](Config{Strategy: s})
	if err != nil {
		// The default config is always valid.
		panic(err)
	}
	for _, kv := range kvs {
		if _, err := t.Insert(kv.Key, kv.Value); err != nil {
			panic(err)
		}
	}
	return t
}

// NewConfig instantiates a new Table configured by c. See [Config]
// for the meaning of zero fields.
func NewConfig[V any](c Config) (*Table[V], error) {
	c, err := c.withDefaults()
	if err != nil {
		return nil, err
	}
	buckets, err := makeBucketArray[V](int(NextPrime(uint64(c.Size))))
	if err != nil {
		return nil, err
	}
	return &Table[V]{
		buckets:    buckets,
		ratio:      c.GrowthRatio,
		maxBuckets: c.MaxBuckets,
		alloc:      makeBucketArray[V],
		hash:       c.Strategy.Hash,
		equal:      c.Strategy.Equal,
		log:        c.Logger,
	}, nil
}

// Len returns the number of keys in t.
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Buckets returns the current bucket count of t.
func (t *Table[V]) Buckets() int {
	if t == nil {
		return 0
	}
	return len(t.buckets.heads)
}

// Find returns a pointer to the value stored under key, or nil if
// key is not in t. The pointer stays valid until the next Insert,
// the Delete of key, or Clear.
func (t *Table[V]) Find(key string) *V {
	if t == nil || t.count == 0 {
		return nil
	}
	if e := t.lookup(key); e != nil {
		return &e.value
	}
	return nil
}

// FindBytes is like Find but takes the key as a byte slice.
func (t *Table[V]) FindBytes(key []byte) *V {
	return t.Find(string(key))
}

// Get returns the value associated with key and true if that key is
// in t, otherwise it returns the zero value of V and false.
func (t *Table[V]) Get(key string) (V, bool) {
	if p := t.Find(key); p != nil {
		return *p, true
	}
	var zeroV V
	return zeroV, false
}

func (t *Table[V]) lookup(key string) *entry[V] {
	b := &t.buckets
	for e := b.heads[b.index(t.hash(key))]; e != nil; e = e.next {
		if t.equal(e.key, key) {
			return e
		}
	}
	return nil
}

// Insert associates key with value unless key is already present.
// It reports true if the key was added and false if an equal key
// was found, in which case the stored value is not changed.
//
// Insert may grow t before adding the key. If growing fails the
// returned error wraps ErrAllocation and t is unchanged.
func (t *Table[V]) Insert(key string, value V) (bool, error) {
	if t == nil {
		// We have to panic here rather than initialize an empty
		// table because the strategy is chosen at construction.
		panic("Insert called on nil table")
	}
	if t.flags&hashWriting != 0 {
		panic("concurrent table writes")
	}
	hash := t.hash(key)
	t.flags ^= hashWriting
	defer t.doneWriting()

	if t.overLoad() {
		if err := t.grow(); err != nil {
			return false, err
		}
	}

	b := &t.buckets
	i := b.index(hash)
	for e := b.heads[i]; e != nil; e = e.next {
		if t.equal(e.key, key) {
			return false, nil
		}
	}
	b.push(i, &entry[V]{key: key, value: value})
	t.count++
	return true, nil
}

// InsertBytes is like Insert but takes the key as a byte slice. The
// table keeps its own copy of key.
func (t *Table[V]) InsertBytes(key []byte, value V) (bool, error) {
	return t.Insert(string(key), value)
}

// Delete removes key and its associated value from t. It reports
// whether key was present.
func (t *Table[V]) Delete(key string) bool {
	if t == nil || t.count == 0 {
		return false
	}
	if t.flags&hashWriting != 0 {
		panic("concurrent table writes")
	}
	hash := t.hash(key)

	// Set hashWriting after calling t.hash, since t.hash may panic,
	// in which case we have not actually done a write.
	t.flags ^= hashWriting
	defer t.doneWriting()

	b := &t.buckets
	i := b.index(hash)
	var prev *entry[V]
	for e := b.heads[i]; e != nil; prev, e = e, e.next {
		if !t.equal(e.key, key) {
			continue
		}
		if prev == nil {
			b.heads[i] = e.next
			if e.next == nil {
				b.occupied--
			}
		} else {
			prev.next = e.next
		}
		// Keep e.next so an iterator positioned on e can move on.
		var zeroV V
		e.value = zeroV
		t.count--
		return true
	}
	return false
}

// Clear deletes all keys from t. The bucket count is kept.
func (t *Table[V]) Clear() {
	if t == nil || t.count == 0 {
		return
	}
	if t.flags&hashWriting != 0 {
		panic("concurrent table writes")
	}
	t.flags ^= hashWriting
	defer t.doneWriting()

	heads := t.buckets.heads
	for i := range heads {
		heads[i] = nil
	}
	t.buckets.occupied = 0
	t.count = 0
}

func (t *Table[V]) doneWriting() {
	if t.flags&hashWriting == 0 {
		panic("concurrent table writes")
	}
	t.flags &^= hashWriting
}

// overLoad reports whether the next insertion must be preceded by a
// rehash.
func (t *Table[V]) overLoad() bool {
	n := len(t.buckets.heads)
	return t.count >= n || (t.count > 0 && n/t.count < t.ratio)
}

// grow replaces the bucket array with one of at least twice the size.
// Entries are relinked, not copied. Once the new array is allocated
// nothing can fail, so the old array stays authoritative on error.
func (t *Table[V]) grow() error {
	start := time.Now()
	old := t.buckets
	want := NextPrime(2 * uint64(len(old.heads)))
	if want > uint64(t.maxBuckets) {
		return fmt.Errorf("%w: %d buckets exceeds limit of %d",
			ErrAllocation, want, t.maxBuckets)
	}
	nb, err := t.alloc(int(want))
	if err != nil {
		return err
	}
	for _, e := range old.heads {
		for e != nil {
			next := e.next
			nb.push(nb.index(t.hash(e.key)), e)
			e = next
		}
	}
	t.buckets = nb
	t.rehashes++

	if t.log != nil {
		t.log.Debug().
			Int("old_buckets", len(old.heads)).
			Int("new_buckets", len(nb.heads)).
			Int("keys", t.count).
			Dur("took", time.Since(start)).
			Msg("hashtable rehashed")
	}
	return nil
}

// Stats describes the shape of a Table.
type Stats struct {
	Len             int
	Buckets         int
	OccupiedBuckets int
	LongestChain    int
	Rehashes        int
}

// LoadFactor returns keys per bucket.
func (s Stats) LoadFactor() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.Len) / float64(s.Buckets)
}

// Stats walks t and returns its current shape. It costs O(buckets).
func (t *Table[V]) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	s := Stats{
		Len:             t.count,
		Buckets:         len(t.buckets.heads),
		OccupiedBuckets: t.buckets.occupied,
		Rehashes:        t.rehashes,
	}
	for _, e := range t.buckets.heads {
		n := 0
		for ; e != nil; e = e.next {
			n++
		}
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}
