// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts t to a string representation using V's String
// function. Entries are sorted by key.
func String[V fmt.Stringer](t *Table[V]) string {
	return StringFunc(t, func(v V) string { return v.String() })
}

type strKV struct {
	k string
	v string
}

// StringFunc converts t to a string representation with the help of
// strV to stringify t's values. Entries are sorted by key.
func StringFunc[V any](t *Table[V], strV func(value V) string) string {
	if t == nil || t.Len() == 0 {
		return "hashtable.Table[]"
	}
	kvs := make([]strKV, 0, t.Len())
	for it := t.Iter(); it.Next(); {
		kvs = append(kvs, strKV{k: it.Key(), v: strV(it.Value())})
	}
	slices.SortFunc(kvs, func(a, b strKV) bool { return a.k < b.k })

	var b strings.Builder
	b.WriteString("hashtable.Table[")
	for i, kv := range kvs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.k)
		b.WriteByte(':')
		b.WriteString(kv.v)
	}
	b.WriteByte(']')
	return b.String()
}

// Keys returns the keys of t in sorted order.
func Keys[V any](t *Table[V]) []string {
	keys := make([]string, 0, t.Len())
	for it := t.Iter(); it.Next(); {
		keys = append(keys, it.Key())
	}
	slices.Sort(keys)
	return keys
}

// Equal returns true if the same set of keys and values are in t1
// and t2. Values are compared using ==. Keys are looked up in t2
// with t2's strategy.
func Equal[V comparable](t1, t2 *Table[V]) bool {
	return EqualFunc(t1, t2, func(a, b V) bool { return a == b })
}

// EqualFunc returns true if the same set of keys and values are in
// t1 and t2. Values are compared using eq.
func EqualFunc[V any](t1, t2 *Table[V], eq func(V, V) bool) bool {
	if t1.Len() != t2.Len() {
		return false
	}
	for it := t1.Iter(); it.Next(); {
		v2, ok := t2.Get(it.Key())
		if !ok || !eq(it.Value(), v2) {
			return false
		}
	}
	return true
}
