package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cratesync/internal/device"
	"cratesync/internal/preflight"
)

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:         "devices",
		Short:       "List mounted volumes that could serve as destinations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			volumes := device.List()
			rows := make([][]string, 0, len(volumes))
			for _, volume := range volumes {
				rows = append(rows, []string{
					volume.Name,
					volume.Path,
					preflight.FormatBytes(volume.FreeBytes),
					preflight.FormatBytes(volume.TotalBytes),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Volume", "Path", "Free", "Total"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))

			if !watch {
				return nil
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				logger = nil
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			monitor := device.NewMonitor(logger, func(event device.Event) {
				fmt.Fprintf(out, "%s %s %s\n", event.Action, event.Device, event.Label)
			})
			if err := monitor.Start(sigCtx); err != nil {
				return fmt.Errorf("start device monitor: %w", err)
			}
			defer monitor.Stop()

			fmt.Fprintln(out, "watching for device events, Ctrl-C to stop")
			<-sigCtx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Stay running and report attach/detach events")
	return cmd
}
