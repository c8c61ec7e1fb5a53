package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cratesync/internal/collection"
)

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List exportable playlists from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			graph, err := collection.Load(cmd.Context(), db)
			if err != nil {
				return err
			}
			leaves, err := graph.Leaves(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(leaves))
			total := 0
			for _, leaf := range leaves {
				tracks, err := graph.TracksOf(cmd.Context(), leaf.ID)
				if err != nil {
					return err
				}
				total += len(tracks)
				rows = append(rows, []string{
					strings.Join(graph.FullPath(leaf.ID), " / "),
					strconv.Itoa(len(tracks)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Playlist", "Tracks"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "%d playlists, %d tracks\n", len(leaves), total)
			return nil
		},
	}
	return cmd
}
