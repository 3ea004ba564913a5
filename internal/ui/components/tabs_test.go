package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

func newTestTabs(t *testing.T, titles ...string) *Tabs {
	t.Helper()
	tabs := make([]*Tab, len(titles))
	for i, title := range titles {
		tabs[i] = NewTab(title, "SELECT * FROM "+title)
	}
	ts, err := NewTabs(tabs...)
	require.NoError(t, err)
	return ts
}

func TestNewTabs_Empty(t *testing.T) {
	_, err := NewTabs()
	assert.Error(t, err)
}

func TestTabs_NextPrevWrap(t *testing.T) {
	ts := newTestTabs(t, "a", "b", "c")

	ts.Next()
	assert.Equal(t, 1, ts.ActiveIndex())
	ts.Next()
	ts.Next()
	assert.Equal(t, 0, ts.ActiveIndex())

	ts.Prev()
	assert.Equal(t, 2, ts.ActiveIndex())
	assert.Equal(t, "c", ts.Active().Title)
}

func TestTabs_SingleTab(t *testing.T) {
	ts := newTestTabs(t, "only")
	ts.Next()
	assert.Equal(t, 0, ts.ActiveIndex())
	ts.Prev()
	assert.Equal(t, 0, ts.ActiveIndex())
}

func TestTabs_SetActive(t *testing.T) {
	ts := newTestTabs(t, "a", "b")
	require.NoError(t, ts.SetActive(1))
	assert.Equal(t, 1, ts.ActiveIndex())

	assert.Error(t, ts.SetActive(2))
	assert.Error(t, ts.SetActive(-1))
	assert.Equal(t, 1, ts.ActiveIndex())
}

func TestTabs_Append(t *testing.T) {
	ts := newTestTabs(t, "a")
	i := ts.Append(NewTab("custom search", "select\n1\n"))

	assert.Equal(t, 1, i)
	assert.Equal(t, 1, ts.Last())
	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, 0, ts.ActiveIndex())
}

func TestTab_Load(t *testing.T) {
	tab := NewTab("a", "SELECT * FROM a")
	assert.Equal(t, TabUnloaded, tab.State())
	_, ok := tab.View()
	assert.False(t, ok)

	view := NewTableView(makeResult(t, 1, 1), DefaultViewOptions())
	tab.Load(view)
	assert.Equal(t, TabLoaded, tab.State())

	got, ok := tab.View()
	require.True(t, ok)
	assert.Same(t, view, got)
}

func TestRenderTabBar(t *testing.T) {
	ts := newTestTabs(t, "users", "orders")
	out := ts.RenderTabBar(theme.DefaultTheme(), 80)

	assert.Contains(t, out, "users")
	assert.Contains(t, out, "rders")
}

func TestRenderTabBar_KeepsActiveVisible(t *testing.T) {
	ts := newTestTabs(t, "alpha", "bravo", "charlie", "delta", "echo")
	require.NoError(t, ts.SetActive(4))

	out := ts.RenderTabBar(theme.DefaultTheme(), 20)
	assert.Contains(t, out, "echo")
	assert.NotContains(t, out, "lpha")
	assert.Contains(t, out, "…")
}
