// ABOUTME: Viewport size tracker reporting only real size changes
// ABOUTME: Fed from terminal resize events after subtracting UI chrome

package window

// Size is a viewport content box
type Size struct {
	Width  int
	Height int
}

// Tracker remembers the last observed size
type Tracker struct {
	size     Size
	observed bool
}

// Observe records width and height.
// Returns the new size and true when it differs from the previous
// observation; the first observation always counts as a change.
func (t *Tracker) Observe(width, height int) (Size, bool) {
	next := Size{Width: max(width, 0), Height: max(height, 0)}

	if t.observed && next == t.size {
		return t.size, false
	}

	t.size = next
	t.observed = true

	return next, true
}

// Size returns the last observed size
func (t *Tracker) Size() Size {
	return t.size
}
