package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a dungeon graph is fully connected",
		Long: `Validate a dungeon graph file.

The file must parse, every connection must reference existing rooms, and
every room must be reachable from every other. A disconnected dungeon exits
non-zero and lists the stranded components.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

// runValidate loads the graph and reports connectivity.
func runValidate(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded dungeon", "path", input, "rooms", g.RoomCount())

	if !g.IsConnected() {
		comps := g.Components()
		printError("%s splits into %d components", input, len(comps))
		for i, comp := range comps {
			printDetail("component %d: %s", i+1, formatRoomList(comp))
		}
		return apperrors.New(apperrors.ErrCodeNotConnected,
			"dungeon splits into %d components", len(comps))
	}

	stats := g.Stats()
	printSuccess("%s is a valid dungeon", input)
	printDetail("%d rooms, %d connections, avg %.1f per room",
		stats.Rooms, stats.Connections, stats.AvgConnections)
	return nil
}

// formatRoomList joins room IDs for display, eliding long lists.
func formatRoomList(ids []string) string {
	const max = 8
	if len(ids) <= max {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:max], ", ") + fmt.Sprintf(" (+%d more)", len(ids)-max)
}
