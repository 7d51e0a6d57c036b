// ABOUTME: Tests for ModelListModel: navigation bounds, cursor tracking, and list states
// ABOUTME: Verifies windowing keeps the cursor visible and rows carry badges and markers

package btea

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/nimdeck/pkg/catalog"
)

func testItems() []catalog.DisplayItem {
	return []catalog.DisplayItem{
		{Model: catalog.Model{ID: "deepseek-v3"}, Speed: catalog.SpeedSlow, Size: 50},
		{Model: catalog.Model{ID: "llama-3.1-8b", OwnedBy: "meta"}, Speed: catalog.SpeedFast, Size: 8, Selected: true},
		{Model: catalog.Model{ID: "mixtral-8x22b"}, Speed: catalog.SpeedMedium, Size: 8},
	}
}

func TestModelListModel_Navigation(t *testing.T) {
	m := NewModelListModel().SetItems(testItems())

	tests := []struct {
		name   string
		key    tea.KeyMsg
		wantID string
	}{
		{"down", tea.KeyMsg{Type: tea.KeyDown}, "llama-3.1-8b"},
		{"j", runeKey("j"), "mixtral-8x22b"},
		{"down at bottom stays", tea.KeyMsg{Type: tea.KeyDown}, "mixtral-8x22b"},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, "llama-3.1-8b"},
		{"home", runeKey("g"), "deepseek-v3"},
		{"up at top stays", runeKey("k"), "deepseek-v3"},
		{"end", runeKey("G"), "mixtral-8x22b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, _ := m.Update(tt.key)
			m = updated.(ModelListModel)
			if got := m.Highlighted(); got != tt.wantID {
				t.Errorf("highlighted = %q; want %q", got, tt.wantID)
			}
		})
	}
}

func TestModelListModel_SetItemsClampsCursor(t *testing.T) {
	t.Parallel()

	m := NewModelListModel().SetItems(testItems())
	updated, _ := m.Update(runeKey("G"))
	m = updated.(ModelListModel)

	m = m.SetItems(testItems()[:1])
	if m.Highlighted() != "deepseek-v3" {
		t.Errorf("highlighted = %q; want clamp to deepseek-v3", m.Highlighted())
	}

	m = m.SetItems(nil)
	if m.Highlighted() != "" {
		t.Errorf("highlighted = %q on empty list", m.Highlighted())
	}
	if _, ok := m.HighlightedItem(); ok {
		t.Error("HighlightedItem ok on empty list")
	}
}

func TestModelListModel_States(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    ModelListModel
		want string
	}{
		{"loading", NewModelListModel(), LoadingModelsText},
		{"empty", NewModelListModel().SetItems([]catalog.DisplayItem{}), NoModelsText},
		{"error", NewModelListModel().SetLoadError("Failed to load models"), "Error loading models: Failed to load models"},
		{"error wins over items", NewModelListModel().SetItems(testItems()).SetLoadError("x"), "Error loading models: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.m.View(); !strings.Contains(got, tt.want) {
				t.Errorf("View() = %q; want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestModelListModel_RowContent(t *testing.T) {
	t.Parallel()

	m := NewModelListModel().SetItems(testItems())
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines; want 3", len(lines))
	}

	if !strings.HasPrefix(lines[0], "> ") || !strings.HasPrefix(lines[1], "  ") {
		t.Error("cursor prefix not on the first row only")
	}
	for _, want := range []string{"🐢 Slow", "50B", "deepseek-v3"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("row 0 missing %q: %q", want, lines[0])
		}
	}
	for _, want := range []string{"⚡ Fast", "8B", "meta", CurrentMarker} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row 1 missing %q: %q", want, lines[1])
		}
	}
	if strings.Contains(lines[2], CurrentMarker) {
		t.Error("non-current row carries the current marker")
	}

	m = m.SetSwitching("mixtral-8x22b")
	lines = strings.Split(m.View(), "\n")
	if !strings.Contains(lines[2], SwitchingText) {
		t.Errorf("switching row = %q", lines[2])
	}
}

func TestModelListModel_Window(t *testing.T) {
	t.Parallel()

	items := make([]catalog.DisplayItem, 20)
	for i := range items {
		items[i] = catalog.DisplayItem{Model: catalog.Model{ID: fmt.Sprintf("model-%02d", i)}}
	}
	m := NewModelListModel().SetItems(items).SetSize(80, 5)
	for range 15 {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(ModelListModel)
	}

	view := m.View()
	if !strings.Contains(view, "model-15") {
		t.Errorf("cursor row not visible:\n%s", view)
	}
	if strings.Contains(view, "model-00") {
		t.Errorf("window did not scroll:\n%s", view)
	}
	if !strings.Contains(view, "16/20") {
		t.Errorf("position line missing:\n%s", view)
	}
	if got := len(strings.Split(view, "\n")); got != 5 {
		t.Errorf("rendered %d lines; want 5", got)
	}
}
