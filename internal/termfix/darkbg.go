// ABOUTME: Fixes the lipgloss background to dark before any renderer queries the terminal
// ABOUTME: Imported for side effects by the CLI entry point

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background lipgloss skips the OSC 11 probe whose
	// late reply would otherwise land in the search box as stray input.
	lipgloss.SetHasDarkBackground(true)
}
