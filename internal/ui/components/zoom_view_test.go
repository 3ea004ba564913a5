package components

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazylite/internal/models"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

func TestZoomView_CountBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for total := 1; total <= 8; total++ {
		z := NewZoomView(total, 5)
		for i := 0; i < 200; i++ {
			switch rng.Intn(4) {
			case 0:
				z.ZoomIn()
			case 1:
				z.ZoomOut()
			case 2:
				z.Advance()
			case 3:
				z.Retreat()
			}
			require.GreaterOrEqual(t, z.Count(), 1)
			require.LessOrEqual(t, z.Count(), total)
			require.GreaterOrEqual(t, z.Offset(), 0)
			require.LessOrEqual(t, z.Offset(), total-z.Count())
		}
	}
}

func TestZoomView_InOut(t *testing.T) {
	z := NewZoomView(3, 2)

	z.ZoomIn()
	assert.Equal(t, 1, z.Count())
	z.ZoomIn()
	assert.Equal(t, 1, z.Count())

	z.ZoomOut()
	z.ZoomOut()
	z.ZoomOut()
	assert.Equal(t, 3, z.Count())
}

func TestZoomView_ZoomOutReclampsOffset(t *testing.T) {
	z := NewZoomView(4, 2)
	z.Advance()
	z.Advance()
	z.Advance()
	assert.Equal(t, 2, z.Offset())

	z.ZoomOut()
	assert.Equal(t, 3, z.Count())
	assert.Equal(t, 1, z.Offset())
}

func TestZoomView_NoColumns(t *testing.T) {
	z := NewZoomView(0, 5)
	z.ZoomIn()
	z.ZoomOut()
	z.Advance()
	z.Retreat()
	assert.Equal(t, 0, z.Count())
	assert.Equal(t, 0, z.Offset())
}

func TestZoomView_MinimumOneField(t *testing.T) {
	z := NewZoomView(4, 0)
	assert.Equal(t, 1, z.Count())
}

func TestZoomView_View(t *testing.T) {
	columns := []string{"id", "payload", "note"}
	row := []models.Value{models.Integer(7), models.Text(`{"a":1}`), models.Null()}

	z := NewZoomView(len(columns), 2)
	out := z.View(columns, row, theme.DefaultTheme(), 60, 12)

	assert.Contains(t, out, "Zoom 1-2/3")
	assert.Contains(t, out, "payload")
	assert.Contains(t, out, `"a": 1`)
	assert.NotContains(t, out, "note")

	z.Advance()
	out = z.View(columns, row, theme.DefaultTheme(), 60, 12)
	assert.Contains(t, out, "Zoom 2-3/3")
	assert.Contains(t, out, "Null")
}
