// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

import "golang.org/x/exp/rand"

// Iterator is instantiated by a call to Iter(). It allows iterating
// over a Table.
type Iterator[V any] struct {
	key         string
	value       V
	heads       []*entry[V]
	e           *entry[V] // last entry returned, nil between buckets
	startBucket int
	bucket      int
	wrapped     bool
}

// Iter instantiates an Iterator to explore the entries of t.
// Ordering is undefined and is intentionally randomized.
//
// Deleting the entry most recently returned by Next is allowed.
// Deleting any other entry during iteration, any Insert that grows
// t, or a call to Clear leaves the iterator in an undefined state.
func (t *Table[V]) Iter() *Iterator[V] {
	if t == nil || t.count == 0 {
		return &Iterator[V]{}
	}
	heads := t.buckets.heads
	start := int(rand.Uint64() % uint64(len(heads)))
	return &Iterator[V]{
		heads:       heads,
		startBucket: start,
		bucket:      start,
	}
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (it *Iterator[V]) Key() string {
	return it.key
}

// Value returns the value at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *Iterator[V]) Value() V {
	return it.value
}

// Next moves the iterator to the next entry. Next returns false when
// the iterator is complete.
func (it *Iterator[V]) Next() bool {
	if it.e != nil {
		it.e = it.e.next
	}
	for it.e == nil {
		if it.heads == nil || (it.bucket == it.startBucket && it.wrapped) {
			var zeroV V
			it.key = ""
			it.value = zeroV
			it.heads = nil
			return false
		}
		it.e = it.heads[it.bucket]
		it.bucket++
		if it.bucket == len(it.heads) {
			it.bucket = 0
		}
		if it.bucket == it.startBucket {
			it.wrapped = true
		}
	}
	it.key = it.e.key
	it.value = it.e.value
	return true
}
