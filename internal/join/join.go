// Package join provides a lazy left join over two key-ordered sequences.
//
// Both inputs must yield keys in strictly ascending order with each key unique
// within its own sequence. Keys may repeat across the two sequences; that is
// what produces a match. Ordering is not checked: feeding unsorted or
// duplicate-keyed input produces unspecified pairings.
//
// The join is linear in the combined length of both inputs. The right side is
// pulled one element at a time and at most one element is buffered between
// rounds, so neither sequence is materialised.
package join

import (
	"cmp"
	"iter"
)

// Pair is one row of a left join: the left value and, if Matched, the right
// value that shared its key. Right is the zero value when Matched is false.
type Pair[U, V any] struct {
	Left    U
	Right   V
	Matched bool
}

// Left joins left against right, yielding one Pair per left element in left
// order. compare orders keys and must be consistent with the order both
// sequences are sorted by.
//
// The returned sequence is single-use: it pulls from right when ranged over
// and cannot be restarted.
func Left[K, U, V any](left iter.Seq2[K, U], right iter.Seq2[K, V], compare func(K, K) int) iter.Seq[Pair[U, V]] {
	return func(yield func(Pair[U, V]) bool) {
		next, stop := iter.Pull2(right)
		defer stop()

		var (
			bufKey   K
			bufVal   V
			buffered bool
			drained  bool
		)

		for key, value := range left {
			row := Pair[U, V]{Left: value}

			for !drained {
				if !buffered {
					bufKey, bufVal, buffered = next()
					if !buffered {
						drained = true
						break
					}
				}
				c := compare(bufKey, key)
				if c < 0 {
					// Smaller keys can never match a later left key.
					buffered = false
					continue
				}
				if c == 0 {
					row.Right = bufVal
					row.Matched = true
					buffered = false
				}
				break
			}

			if !yield(row) {
				return
			}
		}
	}
}

// LeftOrdered is Left for naturally ordered keys.
func LeftOrdered[K cmp.Ordered, U, V any](left iter.Seq2[K, U], right iter.Seq2[K, V]) iter.Seq[Pair[U, V]] {
	return Left(left, right, cmp.Compare[K])
}

// Any reports whether any left element found a match in right. It stops
// pulling from both sequences at the first match.
func Any[K, U, V any](left iter.Seq2[K, U], right iter.Seq2[K, V], compare func(K, K) int) bool {
	for row := range Left(left, right, compare) {
		if row.Matched {
			return true
		}
	}
	return false
}
