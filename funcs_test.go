// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type abbrev string

func (a abbrev) String() string { return "<" + string(a) + ">" }

func TestString(t *testing.T) {
	m := New(Strategy{},
		KeyValue[struct{}]{"ghi", struct{}{}},
		KeyValue[struct{}]{"abc", struct{}{}},
		KeyValue[struct{}]{"def", struct{}{}},
	)
	s := StringFunc(m, func(struct{}) string { return "✅" })
	expected := "hashtable.Table[abc:✅ def:✅ ghi:✅]"
	if s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	a := New(Strategy{},
		KeyValue[abbrev]{"Street", "ST"},
		KeyValue[abbrev]{"Avenue", "AVE"},
	)
	expected = "hashtable.Table[Avenue:<AVE> Street:<ST>]"
	if s := String(a); s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	if s := StringFunc(New[int](Strategy{}), strconv.Itoa); s != "hashtable.Table[]" {
		t.Errorf("Got: %q for empty table", s)
	}
}

func TestKeys(t *testing.T) {
	m := New(Strategy{},
		KeyValue[int]{"b", 2},
		KeyValue[int]{"c", 3},
		KeyValue[int]{"a", 1},
	)
	if diff := cmp.Diff([]string{"a", "b", "c"}, Keys(m)); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	kvs := []KeyValue[int]{{"a", 1}, {"b", 2}, {"c", 3}}
	m1 := New(Strategy{}, kvs...)
	m2 := mustNew[int](t, Config{Size: 2, Hash: "xxh32"})
	for i := len(kvs) - 1; i >= 0; i-- {
		mustInsert(t, m2, kvs[i].Key, kvs[i].Value)
	}
	if !Equal(m1, m2) || !Equal(m2, m1) {
		t.Error("expected tables to be equal")
	}

	*m2.Find("b") = 12
	if Equal(m1, m2) {
		t.Error("expected tables with different values to differ")
	}
	if !EqualFunc(m1, m2, func(a, b int) bool { return a%10 == b%10 }) {
		t.Error("expected EqualFunc to accept values equal mod 10")
	}

	m2.Delete("b")
	if Equal(m1, m2) {
		t.Error("expected tables with different lengths to differ")
	}
}
