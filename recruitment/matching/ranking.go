package matching

import (
	"cmp"
	"slices"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// Scored pairs an item with its score.
type Scored[T any] struct {
	Item  T          `json:"item"`
	Score MatchScore `json:"score"`
}

// Rank sorts items by descending score and returns the requested page.
// Equal scores keep their input order. Pages past the end are empty.
// The input slice is not reordered.
func Rank[T any](items []Scored[T], page, pageSize int) kernel.Paginated[Scored[T]] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = kernel.DefaultPageSize
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Scored[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})

	total := len(sorted)
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := min(start+pageSize, total)

	pageItems := make([]Scored[T], end-start)
	copy(pageItems, sorted[start:end])

	return kernel.Paginated[Scored[T]]{
		Items: pageItems,
		Page: kernel.Page{
			Number: page,
			Size:   pageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pageSize),
		},
		Empty: len(pageItems) == 0,
	}
}
