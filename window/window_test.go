// ABOUTME: Tests for virtual window range computation
// ABOUTME: Verifies the formula, bounds, monotonicity and degenerate inputs

package window

import (
	"math/rand/v2"
	"testing"
)

func TestComputeVisibleRange(t *testing.T) {
	tests := []struct {
		name                                                 string
		scrollOffset, viewportHeight, rowHeight, items, over int
		want                                                 Range
	}{
		{"documented scenario", 250, 400, 50, 100, 2, Range{3, 15}},
		{"top of list", 0, 400, 50, 100, 2, Range{0, 10}},
		{"no overscan", 250, 400, 50, 100, 0, Range{5, 13}},
		{"bottom of list", 4600, 400, 50, 100, 2, Range{90, 99}},
		{"list shorter than viewport", 0, 400, 50, 3, 2, Range{0, 2}},
		{"single item", 0, 10, 1, 1, 2, Range{0, 0}},
		{"terminal rows of two lines", 7, 20, 2, 1000, 2, Range{1, 15}},
		{"offset far past the end", 100000, 400, 50, 100, 2, Range{99, 99}},
		{"negative offset treated as zero", -30, 400, 50, 100, 2, Range{0, 10}},
		{"zero height viewport", 250, 0, 50, 100, 2, Range{3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeVisibleRange(tt.scrollOffset, tt.viewportHeight, tt.rowHeight, tt.items, tt.over)
			if got != tt.want {
				t.Errorf("ComputeVisibleRange(%d, %d, %d, %d, %d) = %+v, want %+v",
					tt.scrollOffset, tt.viewportHeight, tt.rowHeight, tt.items, tt.over, got, tt.want)
			}
		})
	}
}

func TestComputeVisibleRange_EmptyList(t *testing.T) {
	got := ComputeVisibleRange(0, 400, 50, 0, 2)

	if !got.Empty() {
		t.Errorf("range for zero items = %+v, want empty", got)
	}

	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}

	if got.Contains(0) {
		t.Error("empty range should not contain 0")
	}
}

func TestComputeVisibleRange_InvalidRowHeight(t *testing.T) {
	for _, rowHeight := range []int{0, -1, -50} {
		got := ComputeVisibleRange(10, 5, rowHeight, 100, 0)
		want := ComputeVisibleRange(10, 5, MinRowHeight, 100, 0)

		if got != want {
			t.Errorf("rowHeight %d gave %+v, want clamp to %+v", rowHeight, got, want)
		}
	}
}

// TestComputeVisibleRange_Bounds checks 0 <= start <= end <= n-1 over random inputs
func TestComputeVisibleRange_Bounds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for range 10000 {
		items := r.IntN(500) + 1
		rowHeight := r.IntN(60) - 5
		offset := r.IntN(40000) - 100
		height := r.IntN(1000)
		overscan := r.IntN(6)

		got := ComputeVisibleRange(offset, height, rowHeight, items, overscan)

		if got.Start < 0 || got.Start > got.End || got.End > items-1 {
			t.Fatalf("ComputeVisibleRange(%d, %d, %d, %d, %d) = %+v out of bounds",
				offset, height, rowHeight, items, overscan, got)
		}
	}
}

// TestComputeVisibleRange_Monotonic verifies start never decreases as offset grows
func TestComputeVisibleRange_Monotonic(t *testing.T) {
	configs := []struct{ height, rowHeight, items, overscan int }{
		{400, 50, 100, 2},
		{10, 1, 50, 0},
		{23, 2, 1000, 3},
		{400, 50, 3, 2},
	}

	for _, c := range configs {
		prev := -1

		for offset := 0; offset <= TotalContentHeight(c.items, c.rowHeight)+c.height; offset++ {
			got := ComputeVisibleRange(offset, c.height, c.rowHeight, c.items, c.overscan)
			if got.Start < prev {
				t.Fatalf("config %+v: start decreased from %d to %d at offset %d", c, prev, got.Start, offset)
			}

			prev = got.Start
		}
	}
}

func TestTotalContentHeightAndRowOffset(t *testing.T) {
	if got := TotalContentHeight(100, 50); got != 5000 {
		t.Errorf("TotalContentHeight(100, 50) = %d, want 5000", got)
	}

	if got := TotalContentHeight(0, 50); got != 0 {
		t.Errorf("TotalContentHeight(0, 50) = %d, want 0", got)
	}

	if got := TotalContentHeight(10, 0); got != 10 {
		t.Errorf("TotalContentHeight(10, 0) = %d, want 10", got)
	}

	if got := RowOffset(7, 2); got != 14 {
		t.Errorf("RowOffset(7, 2) = %d, want 14", got)
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 3, End: 5}

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	for i, want := range map[int]bool{2: false, 3: true, 5: true, 6: false} {
		if r.Contains(i) != want {
			t.Errorf("Contains(%d) = %v, want %v", i, !want, want)
		}
	}
}
