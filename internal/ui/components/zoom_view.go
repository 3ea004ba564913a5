package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazylite/internal/jsonb"
	"github.com/rebeliceyang/lazylite/internal/models"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// ZoomView is the detail state over the selected row of a TableView.
// Its field count stays within [1, S] for S > 0; with no columns every
// operation is a no-op.
type ZoomView struct {
	fields ColumnWindow
}

// NewZoomView returns a zoom state over total fields showing min(count, total) at once
func NewZoomView(total, count int) ZoomView {
	if total > 0 {
		count = max(1, count)
	}
	return ZoomView{fields: NewColumnWindow(total, count)}
}

// Fields returns the window of visible fields
func (z *ZoomView) Fields() ColumnWindow { return z.fields }

// Offset returns the first visible field
func (z *ZoomView) Offset() int { return z.fields.Offset() }

// Count returns how many fields are shown at once
func (z *ZoomView) Count() int { return z.fields.Width() }

// ZoomIn shows one field fewer, never less than one
func (z *ZoomView) ZoomIn() {
	if z.fields.Total() == 0 {
		return
	}
	z.fields.SetWidth(max(1, z.fields.Width()-1))
}

// ZoomOut shows one field more, never more than there are
func (z *ZoomView) ZoomOut() {
	if z.fields.Total() == 0 {
		return
	}
	z.fields.SetWidth(min(z.fields.Total(), z.fields.Width()+1))
}

// Advance moves the first visible field right
func (z *ZoomView) Advance() {
	z.fields.Right()
}

// Retreat moves the first visible field left
func (z *ZoomView) Retreat() {
	z.fields.Left()
}

// View renders the visible fields of row as side-by-side columns in a
// bordered box of the given outer size. JSON documents are pretty-printed.
func (z *ZoomView) View(columns []string, row []models.Value, th theme.Theme, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused)

	innerWidth := max(1, width-box.GetHorizontalFrameSize())
	innerHeight := max(1, height-box.GetVerticalFrameSize())

	start, end := z.fields.Range()
	if start == end {
		return box.Width(innerWidth).Height(innerHeight).Render("No fields")
	}

	fieldWidth := max(1, innerWidth/(end-start))
	headerStyle := lipgloss.NewStyle().Reverse(true).Bold(true).Foreground(th.TableHeader)

	parts := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		body := zoomText(row[i])
		style := lipgloss.NewStyle().Width(fieldWidth - 1).MarginRight(1)
		if row[i].IsNull() {
			style = style.Foreground(th.Null)
		}

		field := lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(fitCell(columns[i], fieldWidth-1)),
			style.MaxHeight(innerHeight-1).Render(body),
		)
		parts = append(parts, field)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(th.BorderFocused).
		Render(fmt.Sprintf("Zoom %d-%d/%d", start+1, end, z.fields.Total()))

	content := lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	return box.Width(innerWidth).Height(innerHeight).MaxHeight(height).Render(content)
}

func zoomText(v models.Value) string {
	if v.Kind == models.KindText {
		return jsonb.Display(v.Text)
	}
	return v.String()
}
