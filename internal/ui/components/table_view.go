package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazylite/internal/jsonb"
	"github.com/rebeliceyang/lazylite/internal/models"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// ViewOptions sizes a new TableView
type ViewOptions struct {
	// ColumnWidth is how many columns the table shows at once
	ColumnWidth int
	// ZoomFields is how many fields the zoom view starts with
	ZoomFields int
}

// DefaultViewOptions returns the sizes used when nothing is configured
func DefaultViewOptions() ViewOptions {
	return ViewOptions{ColumnWidth: 5, ZoomFields: 5}
}

// TableView is the navigable state over one result set: row selection,
// column window and zoom.
type TableView struct {
	result   *models.ResultSet
	selected int // -1 when there are no rows
	columns  ColumnWindow
	zoom     ZoomView
}

// NewTableView creates a view with the first row selected and the first column visible
func NewTableView(rs *models.ResultSet, opts ViewOptions) *TableView {
	if rs == nil {
		rs = &models.ResultSet{Columns: []string{}}
	}

	width := rs.Width()
	tv := &TableView{
		result:   rs,
		selected: -1,
		columns:  NewColumnWindow(width, max(1, opts.ColumnWidth)),
		zoom:     NewZoomView(width, opts.ZoomFields),
	}
	if rs.Len() > 0 {
		tv.selected = 0
	}
	return tv
}

// Result returns the underlying result set
func (tv *TableView) Result() *models.ResultSet { return tv.result }

// Selected returns the selected row index, if any
func (tv *TableView) Selected() (int, bool) {
	return tv.selected, tv.selected >= 0
}

// SelectedRow returns the values of the selected row, if any
func (tv *TableView) SelectedRow() ([]models.Value, bool) {
	if tv.selected < 0 {
		return nil, false
	}
	return tv.result.Rows[tv.selected], true
}

// Columns returns the column window
func (tv *TableView) Columns() ColumnWindow { return tv.columns }

// Zoom returns the zoom state
func (tv *TableView) Zoom() *ZoomView { return &tv.zoom }

// SelectNext moves the selection down, wrapping to the first row
func (tv *TableView) SelectNext() {
	n := tv.result.Len()
	if n == 0 {
		return
	}
	tv.selected = (tv.selected + 1) % n
}

// SelectPrevious moves the selection up, wrapping to the last row
func (tv *TableView) SelectPrevious() {
	n := tv.result.Len()
	if n == 0 {
		return
	}
	tv.selected = (tv.selected - 1 + n) % n
}

// SelectFirst selects the first row
func (tv *TableView) SelectFirst() {
	if tv.result.Len() > 0 {
		tv.selected = 0
	}
}

// SelectLast selects the last row
func (tv *TableView) SelectLast() {
	if n := tv.result.Len(); n > 0 {
		tv.selected = n - 1
	}
}

// ScrollRight shows one column further right, stopping once the last column is visible
func (tv *TableView) ScrollRight() {
	tv.columns.Right()
}

// ScrollLeft shows one column further left, stopping at the first column
func (tv *TableView) ScrollLeft() {
	tv.columns.Left()
}

// View renders the visible columns and enough rows to fill height, keeping
// the selected row on screen
func (tv *TableView) View(th theme.Theme, width, height int) string {
	if tv.result.Width() == 0 {
		return lipgloss.NewStyle().
			Foreground(th.Null).
			Italic(true).
			Render("No columns")
	}

	start, end := tv.columns.Range()
	cellWidth := max(1, width/max(1, tv.columns.Width())-1)

	headerStyle := lipgloss.NewStyle().Reverse(true).Bold(true).Foreground(th.TableHeader)
	selectedStyle := lipgloss.NewStyle().Reverse(true).Foreground(th.TableRowSelected)
	nullStyle := lipgloss.NewStyle().Foreground(th.Null)

	var b strings.Builder

	header := make([]string, 0, end-start)
	for _, col := range tv.result.Columns[start:end] {
		header = append(header, fitCell(col, cellWidth))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))

	rows := max(0, height-1)
	top := visibleTop(tv.selected, rows)
	last := min(top+rows, tv.result.Len())

	for i := top; i < last; i++ {
		b.WriteString("\n")
		row := tv.result.Rows[i]

		cells := make([]string, 0, end-start)
		for _, v := range row[start:end] {
			cell := fitCell(cellText(v), cellWidth)
			if v.IsNull() && i != tv.selected {
				cell = nullStyle.Render(cell)
			}
			cells = append(cells, cell)
		}

		line := strings.Join(cells, " ")
		if i == tv.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
	}

	return b.String()
}

// visibleTop returns the first row to draw so that selected fits in rows lines
func visibleTop(selected, rows int) int {
	if rows <= 0 || selected < rows {
		return 0
	}
	return selected - rows + 1
}

// cellText is the single-line table form of a value
func cellText(v models.Value) string {
	s := v.String()
	if v.Kind == models.KindText && jsonb.IsDocument(s) {
		if compact, err := jsonb.Compact(s); err == nil {
			return compact
		}
	}
	if strings.ContainsAny(s, "\r\n\t") {
		s = strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\r", "⏎", "\t", " ").Replace(s)
	}
	return s
}

// fitCell truncates or pads s to exactly width terminal cells
func fitCell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
