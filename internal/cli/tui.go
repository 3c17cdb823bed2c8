package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sigil/pkg/core/seal"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ColorwayListModel - Interactive colorway selection
// =============================================================================

// ColorwayListModel is the bubbletea model for interactive colorway selection.
type ColorwayListModel struct {
	Colorways []seal.Colorway
	Cursor    int
	Selected  int // -1 until a colorway is chosen
	Height    int
	Offset    int
}

// NewColorwayListModel creates a picker with the cursor on the given index.
func NewColorwayListModel(colorways []seal.Colorway, cursor int) ColorwayListModel {
	m := ColorwayListModel{
		Colorways: colorways,
		Selected:  -1,
		Height:    len(colorways),
	}
	if cursor >= 0 && cursor < len(colorways) {
		m.Cursor = cursor
	}
	return m
}

func (m ColorwayListModel) Init() tea.Cmd {
	return nil
}

func (m ColorwayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Colorways)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Colorways) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ColorwayListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Colorway"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Colorways))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cw := m.Colorways[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		var sw strings.Builder
		for _, color := range cw {
			sw.WriteString(swatch(color))
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%d", i), sw.String(), strings.Join(cw, " ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Swatch", "Colors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle()
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Colorways))))

	return b.String()
}
