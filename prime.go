// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

// NextPrime returns the smallest prime >= x. Candidates are odd and
// tested by trial division, which is fast enough for any size a
// bucket array can reach.
func NextPrime(x uint64) uint64 {
	if x <= 2 {
		return 2
	}
	if x&1 == 0 {
		x++
	}
	for !IsPrime(x) {
		x += 2
	}
	return x
}

// IsPrime reports whether x is prime.
func IsPrime(x uint64) bool {
	switch {
	case x < 2:
		return false
	case x < 4:
		return true
	case x&1 == 0:
		return false
	}
	for i := uint64(3); ; i += 2 {
		q := x / i
		if q < i {
			return true
		}
		if x == q*i {
			return false
		}
	}
}
