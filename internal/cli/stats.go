package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/graphio"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Show dungeon statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args[0])
		},
	}
}

// runStats loads the graph and prints its statistics.
func runStats(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded dungeon", "path", input)

	stats := g.Stats()
	printKeyValue("Rooms", strconv.Itoa(stats.Rooms))
	printKeyValue("Connections", strconv.Itoa(stats.Connections))
	printKeyValue("Avg per room", fmt.Sprintf("%.2f", stats.AvgConnections))

	connected := StyleSuccess.Render("yes")
	if !stats.Connected {
		connected = StyleWarning.Render("no")
	}
	printKeyValue("Connected", connected)

	if start, ok := g.StartRoom(); ok {
		printKeyValue("Start", start.ID)
	}
	if boss, ok := g.BossRoom(); ok {
		printKeyValue("Boss", boss.ID)
	}

	fmt.Println()
	fmt.Println(StyleTitle.Render("By type"))
	for _, t := range dungeon.RoomTypes() {
		if n := stats.ByType[t]; n > 0 {
			printKeyValue("  "+string(t), strconv.Itoa(n))
		}
	}
	return nil
}
