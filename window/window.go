// ABOUTME: Fixed-row-height virtual window math for large scrolling lists
// ABOUTME: Computes which rows to materialize from scroll offset, viewport size and overscan

// Package window computes the visible slice of a virtualized list.
// All units are abstract rows of height units (terminal lines in livetv); every
// operation is O(1) regardless of item count.
package window

// MinRowHeight is the smallest row height accepted; smaller values are clamped
const MinRowHeight = 1

// DefaultOverscan is the number of extra rows rendered on each side
const DefaultOverscan = 2

// Range is an inclusive index range [Start, End].
// The empty range is {0, -1}.
type Range struct {
	Start int
	End   int
}

// emptyRange is returned when there is nothing to materialize
var emptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range holds no indices
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}

	return r.End - r.Start + 1
}

// Contains reports whether i falls inside the range
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// ComputeVisibleRange returns the rows to materialize.
//
//	rawStart   = floor(scrollOffset / rowHeight)
//	startIndex = max(0, rawStart - overscan)
//	rawEnd     = floor((scrollOffset + viewportHeight) / rowHeight)
//	endIndex   = min(itemCount - 1, rawEnd + overscan)
//
// rowHeight below MinRowHeight is clamped; negative offsets, heights and
// overscan are treated as zero. An offset past the end still yields an
// in-bounds range.
func ComputeVisibleRange(scrollOffset, viewportHeight, rowHeight, itemCount, overscan int) Range {
	if itemCount <= 0 {
		return emptyRange
	}

	rowHeight = max(rowHeight, MinRowHeight)
	scrollOffset = max(scrollOffset, 0)
	viewportHeight = max(viewportHeight, 0)
	overscan = max(overscan, 0)

	rawStart := scrollOffset / rowHeight
	rawEnd := (scrollOffset + viewportHeight) / rowHeight

	start := max(0, rawStart-overscan)
	end := min(itemCount-1, rawEnd+overscan)

	// Offset beyond the content: keep the tail materialized
	if start > end {
		start = end
	}

	return Range{Start: start, End: end}
}

// TotalContentHeight returns the height of the full list
func TotalContentHeight(itemCount, rowHeight int) int {
	if itemCount <= 0 {
		return 0
	}

	return itemCount * max(rowHeight, MinRowHeight)
}

// RowOffset returns the absolute position of row index within the content
func RowOffset(index, rowHeight int) int {
	return index * max(rowHeight, MinRowHeight)
}
