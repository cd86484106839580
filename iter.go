// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build goexperiment.rangefunc

package hashtable

import "iter"

// All returns an iterator over key-value pairs from t.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in t.
func (t *Table[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in t.
func (t *Table[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
