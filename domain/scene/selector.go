package scene

import (
	"sort"

	"insightgraph/domain/core/entities"
)

// DefaultLinkCap bounds how many links are rendered so edge cost stays
// constant regardless of input graph size.
const DefaultLinkCap = 100

// SelectLinks returns the links to render. At or below the cap the input
// is returned untouched; above it, a stable top-K by selection weight
// (strength, then value, then zero) in descending order, with ties kept
// in original order. Dropped links are a visual simplification, never an
// error. The input slice is not reordered.
func SelectLinks(links []*entities.GraphLink, cap int) []*entities.GraphLink {
	if cap <= 0 {
		cap = DefaultLinkCap
	}
	if len(links) <= cap {
		return links
	}

	ranked := make([]*entities.GraphLink, len(links))
	copy(ranked, links)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight() > ranked[j].Weight()
	})
	return ranked[:cap]
}
