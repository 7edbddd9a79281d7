package cli

import (
	"sort"

	"github.com/akulij/zkparser/internal/report"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByKind         SortOrder = "kind"
	SortByAvailability SortOrder = "available"
)

// sortResults sorts results based on the specified sort order
func sortResults(results []Result, sortOrder SortOrder) {
	switch sortOrder {
	case SortByAvailability:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Available != results[j].Available {
				return results[i].Available
			}
			// If availability is equal, sort by kind
			return compareByKind(results[i], results[j])
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return compareByKind(results[i], results[j])
		})
	}
}

// kindOrder maps each kind to its display position
var kindOrder = func() map[report.Kind]int {
	order := make(map[report.Kind]int)
	for i, k := range report.Kinds() {
		order[k] = i
	}
	return order
}()

// compareByKind compares two results by their kind's display position.
// Unknown kinds go last, in name order.
func compareByKind(i, j Result) bool {
	posI, okI := kindOrder[i.Kind]
	posJ, okJ := kindOrder[j.Kind]

	if okI && okJ {
		return posI < posJ
	}
	if okI != okJ {
		return okI
	}
	return i.Kind < j.Kind
}
