// ABOUTME: Lipgloss styles for the dashboard: header, list rows, badges, chat roles
// ABOUTME: Speed badges take their colour from the catalog speed indicator

package btea

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// ThemeStyles holds pre-built lipgloss styles for the dashboard.
type ThemeStyles struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Accent    lipgloss.Style
	Selection lipgloss.Style
	Border    lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style

	SizeBadge    lipgloss.Style
	CurrentBadge lipgloss.Style

	User      lipgloss.Style
	Assistant lipgloss.Style
	System    lipgloss.Style

	FocusedPane lipgloss.Style
	BlurredPane lipgloss.Style
}

var (
	stylesOnce   sync.Once
	cachedStyles *ThemeStyles
)

// Styles returns the shared style set.
func Styles() *ThemeStyles {
	stylesOnce.Do(func() {
		cachedStyles = buildStyles()
	})
	return cachedStyles
}

func buildStyles() *ThemeStyles {
	border := lipgloss.Color("#4b5563")
	accent := lipgloss.Color("#76b900")

	return &ThemeStyles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(accent),
		Selection: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#374151")),
		Border:    lipgloss.NewStyle().Foreground(border),

		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),

		SizeBadge:    lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
		CurrentBadge: lipgloss.NewStyle().Bold(true).Foreground(accent),

		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(accent),
		System:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#9ca3af")),

		FocusedPane: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		BlurredPane: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
	}
}

// SpeedBadge renders the emoji and label for s in the indicator colour.
func SpeedBadge(s catalog.Speed) string {
	ind := catalog.SpeedIndicator(s)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ind.Color)).Render(ind.Emoji + " " + ind.Label)
}
