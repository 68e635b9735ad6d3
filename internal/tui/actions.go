package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "?", "q", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "?":
			m.showHelp = true
			return m, nil

		case "down", "j":
			m.table.MoveDown(1)

		case "up", "k":
			m.table.MoveUp(1)

		case "g", "home":
			m.table.GotoTop()

		case "G", "end":
			m.table.GotoBottom()

		case "v", " ":
			m.toggleCurrent()

		case "V":
			for i := range m.detections {
				m.selected[i] = true
			}
			m.rebuildTableRows()
			m.statusMessage = fmt.Sprintf("Selected all %d detections", len(m.detections))

		case "n":
			m.selected = make(map[int]bool)
			m.rebuildTableRows()
			m.statusMessage = "Selection cleared"

		case "a":
			m.autoSelect()

		case "m", "enter":
			if len(m.SelectedDetections()) == 0 {
				m.statusMessage = "Nothing selected - 'v' to toggle, 'V' for all"
				return m, nil
			}
			m.apply = true
			m.quitting = true
			return m, tea.Quit

		case "y":
			return m, m.copyMasked()
		}

	case statusMsg:
		m.statusMessage = string(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		statusHeight := 1
		tableHeight := msg.Height / 2
		if tableHeight < 5 {
			tableHeight = 5
		}
		m.table.SetHeight(tableHeight)
		viewportHeight := msg.Height - headerHeight - tableHeight - statusHeight - 4
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
	}

	if !m.quitting && len(m.detections) > 0 {
		shouldUpdate := true
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			key := keyMsg.String()
			if key == "down" || key == "j" || key == "up" || key == "k" {
				shouldUpdate = false
			}
		}
		if shouldUpdate {
			m.table, cmd = m.table.Update(msg)
		}
	}

	m.updateViewportContent()
	return m, cmd
}

func (m *Model) toggleCurrent() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.detections) {
		return
	}
	if m.selected[cursor] {
		delete(m.selected, cursor)
		m.statusMessage = "Deselected"
	} else {
		m.selected[cursor] = true
		m.statusMessage = "Selected for masking"
	}
	m.rebuildTableRows()
}

func (m *Model) autoSelect() {
	n := 0
	for i, d := range m.detections {
		if d.Confidence >= AutoSelectThreshold {
			if !m.selected[i] {
				n++
			}
			m.selected[i] = true
		}
	}
	m.rebuildTableRows()
	m.statusMessage = fmt.Sprintf("Auto-selected %d detections (confidence >= %.2f)", n, AutoSelectThreshold)
}

// copyMasked puts the masked rendition of the document on the clipboard.
// The original text never goes to the clipboard from here.
func (m Model) copyMasked() tea.Cmd {
	preview := m.maskedPreview()
	return func() tea.Msg {
		if err := clipboard.WriteAll(preview); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Masked text copied to clipboard")
	}
}
