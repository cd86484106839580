// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/xxHash/xxHash32"
	"github.com/zeebo/xxh3"
)

// Strategy pairs a digest function with the equality it must agree
// with: Equal(a, b) implies Hash(a) == Hash(b). A nil Hash selects
// DJB2 and a nil Equal selects KeyEqual.
type Strategy struct {
	Hash  func(key string) uint32
	Equal func(a, b string) bool
}

// Strategies usable by name from Config.Hash.
var (
	StrategyDJB2     = Strategy{Hash: DJB2, Equal: KeyEqual}
	StrategyDJB2Fold = Strategy{Hash: DJB2Fold, Equal: KeyEqualFold}
	StrategyXXH3     = Strategy{Hash: XXH3, Equal: KeyEqual}
	StrategyXXHash64 = Strategy{Hash: XXHash64, Equal: KeyEqual}
	StrategyXXH32    = Strategy{Hash: XXH32, Equal: KeyEqual}
)

var strategies = map[string]Strategy{
	"djb2":      StrategyDJB2,
	"djb2-fold": StrategyDJB2Fold,
	"xxh3":      StrategyXXH3,
	"xxhash64":  StrategyXXHash64,
	"xxh32":     StrategyXXH32,
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: unknown hash strategy %q",
			ErrInvalidConfig, name)
	}
	return s, nil
}

func (s Strategy) withDefaults() Strategy {
	if s.Hash == nil {
		s.Hash = DJB2
	}
	if s.Equal == nil {
		s.Equal = KeyEqual
	}
	return s
}

const djb2Seed = 5381

// DJB2 hashes key with h = h*33 + b, seeded with 5381.
func DJB2(key string) uint32 {
	h := uint32(djb2Seed)
	for i := 0; i < len(key); i++ {
		h = h<<5 + h + uint32(key[i])
	}
	return h
}

// DJB2Fold is DJB2 over the ASCII lower-cased bytes of key. Pair it
// with KeyEqualFold.
func DJB2Fold(key string) uint32 {
	h := uint32(djb2Seed)
	for i := 0; i < len(key); i++ {
		h = h<<5 + h + uint32(lower(key[i]))
	}
	return h
}

// KeyEqual reports whether a and b have the same length and bytes.
func KeyEqual(a, b string) bool {
	return a == b
}

// KeyEqualFold reports whether a and b are equal after ASCII
// lower-casing. Unlike strings.EqualFold it does no Unicode folding,
// which keeps it consistent with DJB2Fold.
func KeyEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// XXH3 is the 64-bit XXH3 digest of key folded to 32 bits.
func XXH3(key string) uint32 {
	return fold64(xxh3.HashString(key))
}

// XXHash64 is the 64-bit xxHash digest of key folded to 32 bits.
func XXHash64(key string) uint32 {
	return fold64(xxhash.Sum64String(key))
}

// XXH32 is the 32-bit xxHash digest of key with seed 0.
func XXH32(key string) uint32 {
	return xxHash32.Checksum([]byte(key), 0)
}

func fold64(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// Mix32 scrambles a fixed-width integer key so that every input bit
// affects every output bit. It is meant for tables keyed by integers;
// Table itself only hashes strings.
func Mix32(key uint32) uint32 {
	key += ^(key << 15)
	key ^= key >> 10
	key += key << 3
	key ^= key >> 6
	key += ^(key << 11)
	key ^= key >> 16
	return key
}
