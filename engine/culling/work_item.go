package culling

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
)

// WorkItem is one frustum tested against a set of bounding boxes.
// Owners[i] identifies the record that produced Boxes[i]. An item is never
// modified after it is submitted.
type WorkItem struct {
	Frustum common.FrustumPlaneset
	Boxes   []common.BoundingBox
	Owners  []common.Handle
}

// Len returns the number of boxes carried by the item.
func (w WorkItem) Len() int {
	return len(w.Boxes)
}

// cullRange is the payload of one pool task: work items [start, end).
type cullRange struct {
	start int
	end   int
}

// partition splits n items into at most parts contiguous, non-empty ranges of
// near-equal length.
func partition(n, parts int) []cullRange {
	if n <= 0 {
		return nil
	}
	parts = common.Clamp(parts, 1, n)
	out := make([]cullRange, 0, parts)
	size, rem := n/parts, n%parts
	start := 0
	for i := range parts {
		end := start + size
		if i < rem {
			end++
		}
		out = append(out, cullRange{start: start, end: end})
		start = end
	}
	return out
}
