// Package tui is the interactive review surface: a detection table, a
// detail pane with the mask preview, and selection keys feeding the
// masking step. It never writes files itself; the caller applies the
// selection after the program exits.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smartmask/smartmask/internal/mask"
	"github.com/smartmask/smartmask/internal/report"
	"github.com/smartmask/smartmask/internal/types"
)

// AutoSelectThreshold is the confidence floor used by the 'a' key.
const AutoSelectThreshold = 0.90

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	typeIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	typeContactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	typeEntityStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// typeText returns plain text for a type (ANSI codes break table truncation).
func typeText(t types.PIIType) string {
	return string(types.ParseType(string(t)))
}

func styleForType(t types.PIIType) lipgloss.Style {
	switch t {
	case types.TypeAadhaar, types.TypePAN:
		return typeIDStyle
	case types.TypePhone, types.TypeEmail:
		return typeContactStyle
	default:
		return typeEntityStyle
	}
}

// Model holds the review state for one document.
type Model struct {
	table      table.Model
	viewport   viewport.Model
	path       string
	text       string
	detections []types.Detection
	selected   map[int]bool // indices into detections
	apply      bool         // set when the user confirmed masking
	quitting   bool
	ready      bool
	showHelp   bool
	height     int
	width      int

	statusMessage string
}

type statusMsg string

const defaultStatus = "q: quit | ?: help | j/k: navigate | v: toggle | V: all | n: none | a: auto | m: mask"

// NewModel initializes a review model over one document's detections.
func NewModel(path, text string, detections []types.Detection) Model {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Type", Width: 10},
		{Title: "Value", Width: 30},
		{Title: "Conf", Width: 6},
		{Title: "Source", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	m := Model{
		table:         t,
		path:          path,
		text:          text,
		detections:    detections,
		selected:      make(map[int]bool),
		statusMessage: defaultStatus,
	}
	if len(detections) == 0 {
		m.statusMessage = "q: quit"
	}
	m.rebuildTableRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) rebuildTableRows() {
	rows := make([]table.Row, len(m.detections))
	for i, d := range m.detections {
		marker := "[ ]"
		if m.selected[i] {
			marker = "[x]"
		}
		rows[i] = table.Row{
			marker,
			typeText(d.Type),
			report.Shorten(d.Value),
			fmt.Sprintf("%.2f", d.Confidence),
			string(d.Source),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// SelectedDetections returns the chosen subset in detection order, which
// is the order masking will process them in.
func (m Model) SelectedDetections() []types.Detection {
	var out []types.Detection
	for i, d := range m.detections {
		if m.selected[i] {
			out = append(out, d)
		}
	}
	return out
}

// Apply reports whether the user confirmed masking before exit.
func (m Model) Apply() bool {
	return m.apply
}

// maskedPreview applies the current selection to the document text.
func (m Model) maskedPreview() string {
	return mask.Apply(m.text, m.SelectedDetections())
}

func (m *Model) updateViewportContent() {
	if !m.ready || len(m.detections) == 0 {
		return
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.detections) {
		return
	}
	d := m.detections[cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render("Detection detail"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Type:        %s\n", styleForType(d.Type).Render(typeText(d.Type)))
	fmt.Fprintf(&b, "Value:       %s\n", report.Shorten(d.Value))
	fmt.Fprintf(&b, "Confidence:  %.2f\n", d.Confidence)
	fmt.Fprintf(&b, "Source:      %s\n", d.Source)
	fmt.Fprintf(&b, "Occurrences: %d\n", strings.Count(m.text, d.Value))
	fmt.Fprintf(&b, "Masked as:   %s\n", mask.Value(d.Value, d.Type))
	if m.selected[cursor] {
		b.WriteString("\nSelected for masking.\n")
	}
	m.viewport.SetContent(b.String())
}

func (m Model) helpView() string {
	help := `Keys

  j / down     next detection
  k / up       previous detection
  v / space    toggle selection
  V            select all
  n            clear selection
  a            select confidence >= 0.90
  m / enter    mask selection and exit
  y            copy masked text to clipboard
  ?            close help
  q / esc      exit without masking`
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		emptyTextStyle.Render(help))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.helpView()
	}

	counts := types.CountByType(m.detections)
	var parts []string
	for _, typ := range types.AllTypes() {
		if counts[typ] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", styleForType(typ).Render(string(typ)), counts[typ]))
		}
	}
	statsContent := fmt.Sprintf("%s  |  Total: %d", m.path, len(m.detections))
	if len(parts) > 0 {
		statsContent += "  |  " + strings.Join(parts, "  ")
	}
	if n := len(m.SelectedDetections()); n > 0 {
		statsContent += fmt.Sprintf("  |  [%d selected]", n)
	}
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	var middle string
	if len(m.detections) == 0 {
		middle = lipgloss.Place(
			m.width,
			m.table.Height(),
			lipgloss.Center,
			lipgloss.Center,
			emptyTextStyle.Render("No PII detected in this document.\n\nPress 'q' to exit"),
		)
	} else {
		middle = tableBorderStyle.
			Width(m.width).
			Height(m.table.Height()).
			Render(m.table.View())
	}

	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	statusRender := statusStyle.
		Width(m.width).
		Padding(0, 2).
		Render(m.statusMessage)

	return lipgloss.JoinVertical(lipgloss.Left,
		statsHeader,
		middle,
		detailRender,
		statusRender,
	)
}
