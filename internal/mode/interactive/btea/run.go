// ABOUTME: Entry point for the Bubble Tea dashboard
// ABOUTME: Silences non-error logging, runs the program on the alt screen, blocks until exit

package btea

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	pilog "github.com/mauromedda/nimdeck/internal/log"
)

// Run starts the dashboard. Blocks until the user exits.
func Run(deps AppDeps) error {
	prev := pilog.GetLevel()
	if prev < pilog.LevelError {
		pilog.SetLevel(pilog.LevelError)
	}
	defer pilog.SetLevel(prev)

	p := tea.NewProgram(
		NewAppModel(deps),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
