// ABOUTME: ModelListModel renders the filtered, sorted model catalog with a cursor
// ABOUTME: Rows show speed and size badges, owner, and the current-model marker

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/nimdeck/pkg/catalog"
	"github.com/mauromedda/nimdeck/pkg/tui/width"
)

// Empty and error states of the list.
const (
	NoModelsText      = "No models found"
	LoadingModelsText = "Loading models..."
	SwitchingText     = "Switching..."
	CurrentMarker     = "✓ Current Model"
)

// ModelListModel is a leaf model holding the display list and cursor.
type ModelListModel struct {
	items     []catalog.DisplayItem
	cursor    int
	loaded    bool
	loadErr   string
	switching string
	height    int
	width     int
}

// NewModelListModel creates an empty list in the loading state.
func NewModelListModel() ModelListModel {
	return ModelListModel{height: 10, width: 80}
}

// Init returns nil; no commands needed for a leaf model.
func (m ModelListModel) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement.
func (m ModelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.items)-1, 0)
	}
	return m, nil
}

// SetItems replaces the rows. The cursor follows the previously highlighted
// model when it is still listed, otherwise it is clamped.
func (m ModelListModel) SetItems(items []catalog.DisplayItem) ModelListModel {
	prev := m.Highlighted()
	m.items = items
	m.loaded = true
	m.cursor = min(m.cursor, max(len(items)-1, 0))
	if prev != "" {
		for i, it := range items {
			if it.ID == prev {
				m.cursor = i
				break
			}
		}
	}
	return m
}

// SetLoadError puts the list into the error state; "" clears it.
func (m ModelListModel) SetLoadError(msg string) ModelListModel {
	m.loadErr = msg
	m.loaded = true
	return m
}

// SetSwitching marks id as the row with a switch in flight; "" clears it.
func (m ModelListModel) SetSwitching(id string) ModelListModel {
	m.switching = id
	return m
}

// SetSize sets the visible row count and width.
func (m ModelListModel) SetSize(w, h int) ModelListModel {
	m.width = w
	m.height = max(h, 1)
	return m
}

// Highlighted returns the ID under the cursor, or "".
func (m ModelListModel) Highlighted() string {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].ID
}

// HighlightedItem returns the row under the cursor.
func (m ModelListModel) HighlightedItem() (catalog.DisplayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return catalog.DisplayItem{}, false
	}
	return m.items[m.cursor], true
}

// View renders the visible window of rows.
func (m ModelListModel) View() string {
	s := Styles()

	switch {
	case m.loadErr != "":
		return s.Error.Render("Error loading models: " + m.loadErr)
	case !m.loaded:
		return s.Muted.Render(LoadingModelsText)
	case len(m.items) == 0:
		return s.Muted.Render(NoModelsText)
	}

	start, end := m.window()
	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(m.items[i], i == m.cursor))
	}
	if end-start < len(m.items) {
		fmt.Fprintf(&b, "\n%s", s.Muted.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.items))))
	}
	return b.String()
}

// window returns the [start, end) row range keeping the cursor visible.
func (m ModelListModel) window() (int, int) {
	n := len(m.items)
	if n <= m.height {
		return 0, n
	}
	rows := max(m.height-1, 1) // room for the position line
	start := max(m.cursor-rows/2, 0)
	end := start + rows
	if end > n {
		end = n
		start = end - rows
	}
	return start, end
}

func (m ModelListModel) renderRow(it catalog.DisplayItem, highlighted bool) string {
	s := Styles()

	prefix := "  "
	if highlighted {
		prefix = "> "
	}

	idWidth := max(m.width-40, 16)
	id := width.PadRight(width.Truncate(it.ID, idWidth), idWidth)
	if highlighted {
		id = s.Selection.Render(id)
	}

	cols := []string{
		prefix,
		width.PadRight(SpeedBadge(it.Speed), 10),
		width.PadRight(s.SizeBadge.Render(fmt.Sprintf("%dB", it.Size)), 6),
		id,
	}
	if it.OwnedBy != "" {
		cols = append(cols, " "+s.Muted.Render(it.OwnedBy))
	}

	switch {
	case it.ID == m.switching:
		cols = append(cols, " "+s.Accent.Render(SwitchingText))
	case it.Selected:
		cols = append(cols, " "+s.CurrentBadge.Render(CurrentMarker))
	}
	return strings.Join(cols, "")
}
