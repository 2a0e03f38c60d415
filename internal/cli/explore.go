package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse dungeon rooms interactively",
		Long: `Browse the rooms of a dungeon graph in an interactive terminal view.

Each room is listed with its type, state, door count, and passage distance
from the start room. The panel below the table shows where the selected
room leads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd.Context(), args[0])
		},
	}
}

// runExplore loads the graph and runs the room browser.
func runExplore(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	if g.RoomCount() == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidGraph, "dungeon has no rooms")
	}
	logger.Debug("exploring dungeon", "path", input, "rooms", g.RoomCount())

	if !g.IsConnected() {
		printWarning("Dungeon is not connected; some distances will be missing")
	}

	_, err = tea.NewProgram(NewExploreModel(g)).Run()
	return err
}

// =============================================================================
// ExploreModel - Interactive room browser
// =============================================================================

// ExploreModel is the bubbletea model for the room browser.
type ExploreModel struct {
	Rooms  []*dungeon.Room
	Cursor int
	Height int
	Offset int

	graph     *dungeon.Graph
	distances map[string]int // passages from the start room, reachable rooms only
}

// NewExploreModel creates a room browser over the graph.
func NewExploreModel(g *dungeon.Graph) ExploreModel {
	m := ExploreModel{
		Rooms:  g.Rooms(),
		Height: 15,
		graph:  g,
	}
	if start, ok := g.StartRoom(); ok {
		m.distances = make(map[string]int, len(m.Rooms))
		for _, r := range m.Rooms {
			if d := g.Distance(start.ID, r.ID); d != dungeon.Unreachable {
				m.distances[r.ID] = d
			}
		}
	}
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	if len(m.Rooms) == 0 {
		return listDimStyle.Render("(empty dungeon)")
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Dungeon"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rooms) {
		end = len(m.Rooms)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rooms[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			r.ID,
			string(r.Type),
			string(r.State),
			strconv.Itoa(m.graph.Degree(r.ID)),
			m.distanceLabel(r.ID),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Type", "State", "Doors", "From Start").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Rooms) {
				return lipgloss.NewStyle()
			}
			r := m.Rooms[idx]

			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if r.State == dungeon.StateLocked {
				return base.Foreground(colorDim)
			}
			if col == 3 || col == 5 {
				return base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.neighborPanel())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rooms))))

	return b.String()
}

// neighborPanel describes where the selected room leads.
func (m ExploreModel) neighborPanel() string {
	r := m.Rooms[m.Cursor]
	neighbors := m.graph.Neighbors(r.ID)

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(r.ID))
	b.WriteString(listDimStyle.Render(fmt.Sprintf(" · %d doors", len(neighbors))))
	b.WriteString("\n")

	if len(neighbors) == 0 {
		b.WriteString(listDimStyle.Render("  (no passages)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, n := range neighbors {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			listDimStyle.Render(iconArrow),
			listNormalStyle.Render(n.ID),
			listDimStyle.Render("("+string(n.Type)+")")))
	}
	return b.String()
}

// distanceLabel renders the passage count from the start room, or a dash
// when the room is unreachable or no start room exists.
func (m ExploreModel) distanceLabel(id string) string {
	d, ok := m.distances[id]
	if !ok {
		return "—"
	}
	return strconv.Itoa(d)
}
