package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazylite/internal/models"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// makeResult builds a result set of cols columns and rows rows of integers
func makeResult(t *testing.T, cols, rows int) *models.ResultSet {
	t.Helper()

	columns := make([]string, cols)
	for c := range columns {
		columns[c] = fmt.Sprintf("c%d", c)
	}
	data := make([][]models.Value, rows)
	for r := range data {
		row := make([]models.Value, cols)
		for c := range row {
			row[c] = models.Integer(int64(r*cols + c))
		}
		data[r] = row
	}

	rs, err := models.NewResultSet(columns, data)
	require.NoError(t, err)
	return rs
}

func TestNewTableView(t *testing.T) {
	tv := NewTableView(makeResult(t, 8, 3), DefaultViewOptions())

	sel, ok := tv.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel)
	assert.Equal(t, 0, tv.Columns().Offset())
	assert.Equal(t, 5, tv.Columns().Width())
	assert.Equal(t, 5, tv.Zoom().Count())
}

func TestNewTableView_Narrow(t *testing.T) {
	tv := NewTableView(makeResult(t, 2, 1), ViewOptions{ColumnWidth: 5, ZoomFields: 5})
	assert.Equal(t, 2, tv.Columns().Width())
	assert.Equal(t, 2, tv.Zoom().Count())
}

func TestNewTableView_Empty(t *testing.T) {
	tv := NewTableView(makeResult(t, 3, 0), DefaultViewOptions())

	_, ok := tv.Selected()
	assert.False(t, ok)

	tv.SelectNext()
	tv.SelectPrevious()
	tv.SelectFirst()
	tv.SelectLast()

	_, ok = tv.Selected()
	assert.False(t, ok)

	_, ok = tv.SelectedRow()
	assert.False(t, ok)
}

func TestSelectNext_Cycle(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for start := 0; start < n; start++ {
			tv := NewTableView(makeResult(t, 2, n), DefaultViewOptions())
			for i := 0; i < start; i++ {
				tv.SelectNext()
			}
			before, _ := tv.Selected()
			require.Equal(t, start, before)

			for i := 0; i < n; i++ {
				tv.SelectNext()
			}
			after, _ := tv.Selected()
			assert.Equal(t, before, after, "rows=%d start=%d", n, start)
		}
	}
}

func TestSelectPrevious_Wraps(t *testing.T) {
	tv := NewTableView(makeResult(t, 2, 3), DefaultViewOptions())

	var got []int
	for i := 0; i < 3; i++ {
		tv.SelectPrevious()
		sel, _ := tv.Selected()
		got = append(got, sel)
	}
	assert.Equal(t, []int{2, 1, 0}, got)
}

func TestSelectFirstLast(t *testing.T) {
	tv := NewTableView(makeResult(t, 2, 4), DefaultViewOptions())

	tv.SelectLast()
	sel, _ := tv.Selected()
	assert.Equal(t, 3, sel)

	row, ok := tv.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, models.Integer(6), row[0])

	tv.SelectFirst()
	sel, _ = tv.Selected()
	assert.Equal(t, 0, sel)
}

func TestScroll_Bounds(t *testing.T) {
	for cols := 0; cols <= 9; cols++ {
		for width := 1; width <= 6; width++ {
			tv := NewTableView(makeResult(t, cols, 1), ViewOptions{ColumnWidth: width, ZoomFields: 1})
			bound := max(0, cols-min(width, cols))

			for i := 0; i < cols+3; i++ {
				tv.ScrollRight()
				require.LessOrEqual(t, tv.Columns().Offset(), bound)
			}
			assert.Equal(t, bound, tv.Columns().Offset(), "cols=%d width=%d", cols, width)

			for i := 0; i < cols+3; i++ {
				tv.ScrollLeft()
				require.GreaterOrEqual(t, tv.Columns().Offset(), 0)
			}
			assert.Equal(t, 0, tv.Columns().Offset())
		}
	}
}

func TestColumnWindow_Range(t *testing.T) {
	w := NewColumnWindow(7, 3)
	start, end := w.Range()
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	w.Right()
	w.Right()
	start, end = w.Range()
	assert.Equal(t, [2]int{2, 5}, [2]int{start, end})

	// Shrinking the total width past the offset pulls it back
	w.SetWidth(6)
	assert.Equal(t, 1, w.Offset())
}

func TestTableView_View(t *testing.T) {
	rs, err := models.NewResultSet(
		[]string{"id", "name", "note"},
		[][]models.Value{
			{models.Integer(1), models.Text("ada"), models.Null()},
			{models.Integer(2), models.Text("line one\nline two"), models.Text("x")},
		},
	)
	require.NoError(t, err)

	tv := NewTableView(rs, ViewOptions{ColumnWidth: 2, ZoomFields: 2})
	out := tv.View(theme.DefaultTheme(), 40, 10)

	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	assert.NotContains(t, out, "note")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "line one⏎line two")

	tv.ScrollRight()
	out = tv.View(theme.DefaultTheme(), 40, 10)
	assert.NotContains(t, out, "id ")
	assert.Contains(t, out, "note")
	assert.Contains(t, out, "Null")
}

func TestTableView_ViewKeepsSelectionVisible(t *testing.T) {
	tv := NewTableView(makeResult(t, 1, 20), ViewOptions{ColumnWidth: 1, ZoomFields: 1})
	tv.SelectLast()

	out := tv.View(theme.DefaultTheme(), 20, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[4], "19")
	assert.NotContains(t, out, " 0 ")
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "a⏎b", cellText(models.Text("a\nb")))
	assert.Equal(t, `{"a":[1,2]}`, cellText(models.Text("{\n  \"a\": [1, 2]\n}")))
	assert.Equal(t, "Null", cellText(models.Null()))
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "ab   ", fitCell("ab", 5))
	assert.Equal(t, "abcd…", fitCell("abcdefgh", 5))
	assert.Equal(t, "日本 ", fitCell("日本", 5))
}

func TestVisibleTop(t *testing.T) {
	assert.Equal(t, 0, visibleTop(-1, 5))
	assert.Equal(t, 0, visibleTop(4, 5))
	assert.Equal(t, 1, visibleTop(5, 5))
	assert.Equal(t, 0, visibleTop(3, 0))
}
