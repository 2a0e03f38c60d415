package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
)

// pathOpts holds the command-line flags for the path command.
type pathOpts struct {
	from     string // source room (start room if empty)
	to       string // destination room
	farthest bool   // find the room farthest from the source instead
}

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	var opts pathOpts

	cmd := &cobra.Command{
		Use:   "path [file]",
		Short: "Measure passage distance between rooms",
		Long: `Measure the shortest passage count between two rooms.

With --farthest the destination is the room farthest from the source, which
is how boss lairs are placed during generation. The source defaults to the
start room.

Examples:
  delvemap path crypt.json --from room_1 --to room_9
  delvemap path crypt.json --farthest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "source room (default: start room)")
	cmd.Flags().StringVar(&opts.to, "to", "", "destination room")
	cmd.Flags().BoolVar(&opts.farthest, "farthest", false, "find the room farthest from the source")

	return cmd
}

// runPath answers a distance query against the graph. An unreachable
// destination is an answer, not an error; an unknown room is an error.
func runPath(ctx context.Context, input string, opts *pathOpts) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded dungeon", "path", input)

	from := opts.from
	if from == "" {
		start, ok := g.StartRoom()
		if !ok {
			return apperrors.New(apperrors.ErrCodeRoomNotFound,
				"dungeon has no start room; pass --from")
		}
		from = start.ID
	}

	if opts.farthest {
		id, dist, ok := g.Farthest(from)
		if !ok {
			return apperrors.New(apperrors.ErrCodeRoomNotFound, "room %q not in dungeon", from)
		}
		printSuccess("Farthest room from %s is %s",
			StyleHighlight.Render(from), StyleHighlight.Render(id))
		printDetail("%d passages away", dist)
		return nil
	}

	if opts.to == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "pass --to or --farthest")
	}

	// Distance cannot tell a missing room from an unreachable one, so check
	// both endpoints up front.
	for _, id := range []string{from, opts.to} {
		if _, ok := g.Room(id); !ok {
			return apperrors.New(apperrors.ErrCodeRoomNotFound, "room %q not in dungeon", id)
		}
	}

	dist := g.Distance(from, opts.to)
	if dist == dungeon.Unreachable {
		printWarning("No route from %s to %s", from, opts.to)
		return nil
	}
	printSuccess("%s %s %s: %d passages",
		StyleHighlight.Render(from), iconArrow, StyleHighlight.Render(opts.to), dist)
	return nil
}
