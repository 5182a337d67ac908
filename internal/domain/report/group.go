package report

import "slices"

// tally sums values per key and remembers the order keys were first seen,
// so that sorting the result stably breaks ties by input order.
type tally[K comparable] struct {
	index map[K]int
	keys  []K
	sums  []int
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{index: make(map[K]int)}
}

func (t *tally[K]) add(k K, v int) {
	i, ok := t.index[k]
	if !ok {
		i = len(t.keys)
		t.index[k] = i
		t.keys = append(t.keys, k)
		t.sums = append(t.sums, 0)
	}
	t.sums[i] += v
}

type bucket[K comparable] struct {
	key K
	sum int
}

// desc returns the buckets ordered by sum descending, first-seen on ties.
func (t *tally[K]) desc() []bucket[K] {
	out := make([]bucket[K], len(t.keys))
	for i, k := range t.keys {
		out[i] = bucket[K]{key: k, sum: t.sums[i]}
	}
	slices.SortStableFunc(out, func(a, b bucket[K]) int {
		return b.sum - a.sum
	})
	return out
}

// head returns at most n leading elements; n <= 0 yields none.
func head[T any](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
