package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// Preview styles
var previewPalette = []lipgloss.Color{
	lipgloss.Color("24"),
	lipgloss.Color("94"),
	lipgloss.Color("22"),
	lipgloss.Color("52"),
	lipgloss.Color("54"),
	lipgloss.Color("58"),
}

// Terminal cells are roughly twice as tall as they are wide, so vertical
// distances are halved when mapping layout pixels to rows of text.
const cellAspect = 2.0

// minTargetRows and maxTargetRows bound the target row height in text rows.
const (
	minTargetRows = 2
	maxTargetRows = 20
)

// PreviewModel is the bubbletea model for the live layout preview. The
// gallery is repacked on every terminal resize and whenever the target row
// height changes, so the preview always reflects what the packer would do at
// the current dimensions.
type PreviewModel struct {
	Items      []gallery.Item
	Title      string
	TargetRows int
	Opts       gallery.Options

	width  int
	layout gallery.Layout
	err    error
}

// NewPreviewModel creates a preview model for the given items.
func NewPreviewModel(title string, items []gallery.Item, targetRows int, opts gallery.Options) PreviewModel {
	if targetRows < minTargetRows {
		targetRows = minTargetRows
	}
	return PreviewModel{
		Items:      items,
		Title:      title,
		TargetRows: targetRows,
		Opts:       opts,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			if m.TargetRows < maxTargetRows {
				m.TargetRows++
				m.repack()
			}
		case "-", "_":
			if m.TargetRows > minTargetRows {
				m.TargetRows--
				m.repack()
			}
		case "s":
			m.Opts.SnapLastToEdge = !m.Opts.SnapLastToEdge
			m.repack()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.repack()
	}
	return m, nil
}

// repack recomputes the layout for the current terminal width and target.
// Widths map one layout pixel per column; heights are compressed by the
// terminal cell aspect so tiles keep their shape on screen.
func (m *PreviewModel) repack() {
	if m.width <= 0 {
		return
	}
	target := float64(m.TargetRows) * cellAspect
	m.layout, m.err = gallery.PackLayout(m.Items, float64(m.width), target, m.Opts)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("target %d rows", m.TargetRows)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- target height  s snap last row  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render("pack failed: " + m.err.Error()))
		return b.String()
	}
	if m.width == 0 || len(m.layout.Items) == 0 {
		b.WriteString(StyleDim.Render("waiting for terminal size..."))
		return b.String()
	}

	for _, row := range splitRows(m.layout.Items) {
		cells := make([]string, len(row))
		for i, p := range row {
			cells[i] = renderTile(p, i)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d items · %d rows", len(m.layout.Items), m.layout.Rows)))

	return b.String()
}

// splitRows groups placed items by their shared y coordinate.
func splitRows(items []gallery.PlacedItem) [][]gallery.PlacedItem {
	var rows [][]gallery.PlacedItem
	lastY := -1.0
	for _, p := range items {
		if len(rows) == 0 || p.Y != lastY {
			rows = append(rows, nil)
			lastY = p.Y
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], p)
	}
	return rows
}

// renderTile draws one placed item as a colored block sized in terminal cells.
func renderTile(p gallery.PlacedItem, i int) string {
	w := int(p.Width)
	if w < 1 {
		w = 1
	}
	h := int(p.Height / cellAspect)
	if h < 1 {
		h = 1
	}

	label := p.Item.Caption
	if label == "" {
		label = p.Item.ID
	}
	// Truncate on rune boundaries; byte slicing can split multi-byte captions.
	runes := []rune(label)
	if len(runes) > w-2 && w > 3 {
		label = string(runes[:w-3]) + "…"
	} else if len(runes) > w {
		label = ""
	}

	return lipgloss.NewStyle().
		Width(w).
		Height(h).
		Background(previewPalette[i%len(previewPalette)]).
		Foreground(colorWhite).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}
