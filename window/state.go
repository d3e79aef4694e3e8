// ABOUTME: Virtual window state: scroll offset, viewport size, row height and item count
// ABOUTME: Keeps the selected row visible using cursor-to-middle scrolling

package window

// Window holds the inputs of ComputeVisibleRange between events.
// Range is derived on every call, so any change to offset, viewport or item
// count is reflected immediately. Row content never enters the window.
type Window struct {
	scrollOffset int // First visible line of the content
	width        int // Viewport width, carried for renderers
	height       int // Viewport height in lines
	rowHeight    int // Lines per row
	overscan     int // Extra rows materialized on each side
	itemCount    int // Rows in the current filtered view
}

// New creates a window with the given row height and overscan
func New(rowHeight, overscan int) *Window {
	return &Window{
		rowHeight: max(rowHeight, MinRowHeight),
		overscan:  max(overscan, 0),
	}
}

// SetScrollOffset sets the absolute scroll offset.
// The value is stored as given; callers clamp with ClampOffset.
func (w *Window) SetScrollOffset(offset int) {
	w.scrollOffset = offset
}

// ScrollBy moves the scroll offset by delta lines and clamps it
func (w *Window) ScrollBy(delta int) {
	w.scrollOffset += delta
	w.ClampOffset()
}

// SetViewport records a new viewport size
func (w *Window) SetViewport(width, height int) {
	w.width = width
	w.height = max(height, 0)
}

// SetItemCount records the length of the current filtered view
func (w *Window) SetItemCount(n int) {
	w.itemCount = max(n, 0)
}

// ScrollOffset returns the current scroll offset
func (w *Window) ScrollOffset() int {
	return w.scrollOffset
}

// Width returns the viewport width
func (w *Window) Width() int {
	return w.width
}

// Height returns the viewport height
func (w *Window) Height() int {
	return w.height
}

// RowHeight returns the lines per row
func (w *Window) RowHeight() int {
	return w.rowHeight
}

// ItemCount returns the number of rows in the window's list
func (w *Window) ItemCount() int {
	return w.itemCount
}

// Range returns the rows to materialize for the current state
func (w *Window) Range() Range {
	return ComputeVisibleRange(w.scrollOffset, w.height, w.rowHeight, w.itemCount, w.overscan)
}

// TotalHeight returns the height of the full list
func (w *Window) TotalHeight() int {
	return TotalContentHeight(w.itemCount, w.rowHeight)
}

// MaxOffset returns the largest valid scroll offset
func (w *Window) MaxOffset() int {
	return max(0, w.TotalHeight()-w.height)
}

// ClampOffset pulls the scroll offset back into [0, MaxOffset]
func (w *Window) ClampOffset() {
	w.scrollOffset = min(max(w.scrollOffset, 0), w.MaxOffset())
}

// EnsureVisible scrolls so that row index sits in the middle of the viewport
//
// Scrolling behavior:
// - Top: rows above the middle leave the offset at 0
// - Middle: the selected row stays centred while content scrolls
// - Bottom: the offset stops at MaxOffset and the selection moves down
func (w *Window) EnsureVisible(index int) {
	if w.itemCount == 0 || w.height < 1 {
		w.scrollOffset = 0

		return
	}

	index = min(max(index, 0), w.itemCount-1)
	// The whole row must fit below the middle line
	middle := max(0, min(w.height/2, w.height-w.rowHeight))

	w.scrollOffset = RowOffset(index, w.rowHeight) - middle
	w.ClampOffset()
}

// RowAt returns the row index drawn at viewport line y, or -1
func (w *Window) RowAt(y int) int {
	if y < 0 || y >= w.height {
		return -1
	}

	index := (w.scrollOffset + y) / w.rowHeight
	if index < 0 || index >= w.itemCount {
		return -1
	}

	return index
}
