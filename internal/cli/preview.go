package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Minimap size in terminal cells.
const (
	minimapCols = 48
	minimapRows = 14
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command for browsing a layout.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Browse the placements of a layout",
		Long: `Browse the placements of a layout interactively.

Words are listed in rank order with their size, position, box and color. A
minimap shows where the selected word sits on the canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runPreview(ctx context.Context, input string) error {
	l, err := readLayout(input)
	if err != nil {
		return err
	}
	if len(l.Words) == 0 {
		printInfo("Layout %s has no placed words", input)
		return nil
	}
	_, err = tea.NewProgram(NewPlacementListModel(l), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// =============================================================================
// PlacementListModel - Interactive placement browser
// =============================================================================

// PlacementListModel is the bubbletea model for browsing placed words.
type PlacementListModel struct {
	Layout layout.Layout
	Cursor int
	Height int
	Offset int
}

// NewPlacementListModel creates a placement list model for l.
func NewPlacementListModel(l layout.Layout) PlacementListModel {
	return PlacementListModel{Layout: l, Height: 12}
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Layout.Words)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup", "b":
			m.move(-m.Height)
		case "pgdown", "f", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-n)
		case "end", "G":
			m.move(n)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-minimapRows-10, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window to keep it visible.
func (m *PlacementListModel) move(delta int) {
	n := len(m.Layout.Words)
	if n == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m PlacementListModel) View() string {
	l := m.Layout
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %dx%d", l.Width, l.Height)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d placed · %d skipped · %.0f%% covered",
		len(l.Words), len(l.Skipped), l.Coverage*100)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.table())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(l.Words))))
	b.WriteString("\n\n")
	b.WriteString(m.minimap())
	if !l.Complete && l.Warning != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(l.Warning))
	}
	return b.String()
}

func (m PlacementListModel) table() string {
	words := m.Layout.Words
	end := min(m.Offset+m.Height, len(words))

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		w := words[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		color := w.Color
		if color == "" {
			color = "-"
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(w.Rank + 1),
			w.Text,
			fmt.Sprint(w.Size),
			fmt.Sprintf("%d,%d", w.X, w.Y),
			fmt.Sprintf("%dx%d", w.Width, w.Height),
			w.Orientation.String(),
			color,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Word", "Size", "At", "Box", "Orient", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(words) {
				return lipgloss.NewStyle()
			}
			if col == 7 && words[idx].Color != "" {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("#" + words[idx].Color))
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

// minimap draws the canvas scaled to terminal cells: every placed word is
// shaded and the selected one highlighted.
func (m PlacementListModel) minimap() string {
	l := m.Layout
	if l.Width <= 0 || l.Height <= 0 {
		return ""
	}
	grid := make([][]byte, minimapRows)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", minimapCols))
	}
	mark := func(w layout.Word, c byte) {
		x0, y0 := w.X*minimapCols/l.Width, w.Y*minimapRows/l.Height
		x1 := min((w.X+w.Width-1)*minimapCols/l.Width, minimapCols-1)
		y1 := min((w.Y+w.Height-1)*minimapRows/l.Height, minimapRows-1)
		for y := max(y0, 0); y <= y1; y++ {
			for x := max(x0, 0); x <= x1; x++ {
				grid[y][x] = c
			}
		}
	}
	for i, w := range l.Words {
		if i != m.Cursor {
			mark(w, '#')
		}
	}
	mark(l.Words[m.Cursor], '@')

	var b strings.Builder
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	for y, row := range grid {
		line := string(row)
		line = strings.ReplaceAll(line, ".", listDimStyle.Render("·"))
		line = strings.ReplaceAll(line, "#", StyleDim.Render("▒"))
		line = strings.ReplaceAll(line, "@", listSelectedStyle.Render("█"))
		b.WriteString(line)
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return border.Render(b.String())
}
