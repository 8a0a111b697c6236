package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitful-search/fruitful/internal/builder"
	"github.com/fruitful-search/fruitful/internal/catalog"
	"github.com/fruitful-search/fruitful/internal/search"
	"github.com/fruitful-search/fruitful/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = builder.Build(context.Background(), s, []catalog.Record{
		{"product_id": float64(1), "product_name": "usb cable", "product_url": "https://shop/1"},
		{"product_id": float64(2), "product_name": "usb hub"},
	})
	require.NoError(t, err)

	return NewModel(search.NewEngine(s), 10, true)
}

func updateModel(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_SearchFlow(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("usb")
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(resultsMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Len(t, msg.results, 2)
	assert.False(t, msg.cached)

	m, _ = updateModel(t, m, msg)
	assert.Equal(t, "usb", m.query)
	assert.Len(t, m.results, 2)
	assert.Equal(t, 0, m.selected)
	assert.Empty(t, m.input.Value(), "input clears after a search")

	view := m.View()
	assert.Contains(t, view, "usb cable")
	assert.Contains(t, view, "2 results")
}

func TestModel_RepeatQueryServedFromHistory(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("usb")
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := cmd().(resultsMsg)
	m, _ = updateModel(t, m, first)

	m.input.SetValue("usb")
	_, cmd = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	second := cmd().(resultsMsg)
	assert.True(t, second.cached)
	assert.Equal(t, first.results, second.results)
}

func TestModel_SelectionNavigation(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("usb")
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = updateModel(t, m, cmd().(resultsMsg))

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	// Bounded at the last result.
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)
}

func TestModel_OpenSuppressedReportsURL(t *testing.T) {
	t.Setenv("FRUITFUL_NO_BROWSER", "1")
	m := newTestModel(t)

	m.input.SetValue("cable")
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = updateModel(t, m, cmd().(resultsMsg))

	m, cmd = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	require.NotNil(t, cmd)

	opened, ok := cmd().(openedMsg)
	require.True(t, ok)
	require.NoError(t, opened.err)
	assert.Equal(t, "https://shop/1", opened.url)
}

func TestModel_OpenWhileTypingIsText(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("usb")
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = updateModel(t, m, cmd().(resultsMsg))

	m.input.SetValue("m")
	m, cmd = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	// The keystroke goes to the text input, not the hotkey.
	assert.Equal(t, "mo", m.input.Value())
	_ = cmd
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
