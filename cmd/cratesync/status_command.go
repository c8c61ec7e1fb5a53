package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"cratesync/internal/config"
	"cratesync/internal/exportstate"
	"cratesync/internal/layout"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <destination>",
		Short: "Show the persisted export state of a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dest, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}

			lay := layout.New(dest, cfg.Export)
			if _, err := os.Stat(lay.StatePath); err != nil {
				return fmt.Errorf("no export state at %s", lay.StatePath)
			}
			state := exportstate.Load(lay.StatePath)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s, generated %s\n", state.RunID,
				state.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

			ids := make([]string, 0, len(state.Playlists))
			for id := range state.Playlists {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				return state.Playlists[ids[i]].Name < state.Playlists[ids[j]].Name
			})

			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				record := state.Playlists[id]
				rows = append(rows, []string{
					record.Name,
					yesNo(record.Completed),
					strconv.Itoa(record.TracksCopied),
					strconv.Itoa(record.TracksFailed),
					record.ManifestPath,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Playlist", "Completed", "Copied", "Failed", "Manifest"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
			return nil
		},
	}
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
