package state

import (
	"sort"

	"github.com/feedkit/feedkit/models"
)

// SortByNewest returns items ordered by the timestamp at extracts,
// descending, with missing (zero) timestamps last. The input is never
// mutated; sequences shorter than two are returned as-is. The sort is
// stable, so equal-timestamp entries keep their relative order and applying
// it twice changes nothing.
func SortByNewest[T any](items []T, at func(T) models.Timestamp) []T {
	if len(items) < 2 {
		return items
	}

	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		// Descending by instant; a zero timestamp is before everything,
		// so it never wins and sinks to the end.
		return at(out[j]).Time.Before(at(out[i]).Time)
	})

	return out
}

// postCreatedAt is the accessor used for feed ordering.
func postCreatedAt(p models.Post) models.Timestamp {
	return p.CreatedAt
}
