package compare

import (
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Order int

const (
	Smaller Order = -1
	Equal   Order = 0
	Greater Order = 1
)

type Compare[T any] func(t1, t2 T) Order

func Ordered[T constraints.Ordered](t1, t2 T) Order {
	if t1 < t2 {
		return Smaller
	}
	if t1 == t2 {
		return Equal
	}
	return Greater
}

func Time(t1, t2 time.Time) Order {
	if t1.Equal(t2) {
		return Equal
	}
	if t1.Before(t2) {
		return Smaller
	}
	return Greater
}

// By lifts a comparison on keys to a comparison on values.
func By[T, K any](key func(T) K, cmp Compare[K]) Compare[T] {
	return func(t1, t2 T) Order {
		return cmp(key(t1), key(t2))
	}
}

func Combine[T any](cmp ...Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		for _, c := range cmp {
			if o := c(t1, t2); o != Equal {
				return o
			}
		}
		return Equal
	}
}

// Sort sorts stably, so that equal elements keep their order.
func Sort[T any](ts []T, cmp Compare[T]) {
	slices.SortStableFunc(ts, func(t1, t2 T) bool {
		return cmp(t1, t2) == Smaller
	})
}
