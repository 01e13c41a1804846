package search

import "sort"

// rank sorts hits by score descending. The sort is stable: equal scores keep
// the order they arrived in, which is category declaration order first and
// server-return order within a category (the dispatcher concatenates
// category slots in declaration order before calling this). The ranker never
// rescores.
func rank(hits []Result) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}
