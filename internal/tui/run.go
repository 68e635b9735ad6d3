package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartmask/smartmask/internal/types"
)

// Run reviews one document's detections interactively. It returns the
// selected subset in detection order and whether the user confirmed
// masking; (nil, false) means the user quit without applying.
func Run(path, text string, detections []types.Detection) ([]types.Detection, bool, error) {
	m := NewModel(path, text, detections)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, false, fmt.Errorf("error running TUI: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return nil, false, fmt.Errorf("unexpected final model type %T", final)
	}
	if !fm.Apply() {
		return nil, false, nil
	}
	return fm.SelectedDetections(), true, nil
}
