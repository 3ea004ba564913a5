package components

// ColumnWindow is the visible contiguous slice of a row of fields.
// The offset always stays within [0, max(0, total-width)].
type ColumnWindow struct {
	offset int
	width  int
	total  int
}

// NewColumnWindow returns a window at offset 0 showing min(width, total) of total fields
func NewColumnWindow(total, width int) ColumnWindow {
	w := ColumnWindow{total: max(0, total)}
	w.SetWidth(width)
	return w
}

// Offset returns the first visible field
func (w ColumnWindow) Offset() int { return w.offset }

// Width returns how many fields are visible at once
func (w ColumnWindow) Width() int { return w.width }

// Total returns the number of fields
func (w ColumnWindow) Total() int { return w.total }

// Range returns the visible fields as a half-open interval
func (w ColumnWindow) Range() (start, end int) {
	return w.offset, min(w.offset+w.width, w.total)
}

func (w ColumnWindow) maxOffset() int {
	return max(0, w.total-w.width)
}

// Right slides the window one field right, stopping when the last field is visible
func (w *ColumnWindow) Right() {
	w.offset = min(w.offset+1, w.maxOffset())
}

// Left slides the window one field left, stopping at the first field
func (w *ColumnWindow) Left() {
	w.offset = max(0, w.offset-1)
}

// SetWidth resizes the window to at most total fields and re-clamps the offset
func (w *ColumnWindow) SetWidth(width int) {
	w.width = min(max(0, width), w.total)
	w.offset = min(w.offset, w.maxOffset())
}
