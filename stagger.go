package scrollfx

// Wave staggers a transition across N items so that about Overlap items are
// in motion at once: item i+1 starts before item i finishes.
type Wave struct {
	Overlap float64
}

// ItemWindow returns item i's window in phase-local progress. The windows are
// scaled so item 0 starts at 0 and item n-1 ends at or before 1.
func (w Wave) ItemWindow(i, n int) (start, end float64) {
	if n < 1 {
		return 0, 0
	}
	overlap := w.Overlap
	if overlap < 0 || overlap != overlap {
		overlap = 0
	}
	total := float64(n)
	scale := 1 / (1 + overlap/total)
	start = float64(i) / total * scale
	end = start + overlap/total*scale
	return start, end
}

// Item returns item i's progress for a phase-local value.
func (w Wave) Item(value float64, i, n int) float64 {
	if n < 1 {
		return 0
	}
	start, end := w.ItemWindow(i, n)
	return ramp(value, start, end)
}
