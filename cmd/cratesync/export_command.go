package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cratesync/internal/collection"
	"cratesync/internal/config"
	"cratesync/internal/export"
	"cratesync/internal/exportstate"
	"cratesync/internal/layout"
	"cratesync/internal/logging"
	"cratesync/internal/manifest"
	"cratesync/internal/preflight"
	"cratesync/internal/transfer"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		sample int
		full   bool
		resume bool
		dryRun bool
		match  string
	)

	cmd := &cobra.Command{
		Use:   "export <destination>",
		Short: "Export playlists and tracks to a destination volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if full && sample > 0 {
				return errors.New("--full and --sample are mutually exclusive")
			}
			return runExport(cmd, ctx, args[0], full, sample, export.Options{
				Resume: resume,
				DryRun: dryRun,
				Match:  match,
			})
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "Export only the first N playlists (default from sample_size)")
	cmd.Flags().BoolVar(&full, "full", false, "Export every playlist")
	cmd.Flags().BoolVar(&resume, "resume", false, "Skip playlists completed in a previous run")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the export without writing anything")
	cmd.Flags().StringVar(&match, "match", "", "Only export playlists whose folder path contains this substring")

	return cmd
}

func runExport(cmd *cobra.Command, ctx *commandContext, destArg string, full bool, sample int, opts export.Options) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	// Without --full the run is capped, defaulting to the configured
	// sample size, so a first export cannot fill a volume by accident.
	if !full {
		opts.Sample = sample
		if opts.Sample <= 0 {
			opts.Sample = cfg.Export.SampleSize
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample run limited to %d playlists; pass --full for everything\n", opts.Sample)
	}

	dest, err := config.ExpandPath(destArg)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	catalogPath, catalogErr := ctx.catalogPath(cfg)
	if catalogErr != nil {
		catalogPath = ""
	}
	checks := preflight.Run(dest, catalogPath, 0)
	printPreflight(cmd, checks)
	if !preflight.AllPassed(checks) {
		return fmt.Errorf("%w: preflight checks failed", export.ErrStructural)
	}

	db, err := ctx.openCatalog()
	if err != nil {
		return fmt.Errorf("%w: %v", export.ErrStructural, err)
	}
	defer db.Close()

	lay := layout.New(dest, cfg.Export)
	if !opts.DryRun {
		if err := lay.EnsureRoots(); err != nil {
			return fmt.Errorf("%w: %v", export.ErrStructural, err)
		}
		lock, err := exportstate.AcquireLock(lay.LockPath)
		if err != nil {
			return fmt.Errorf("%w: %v", export.ErrStructural, err)
		}
		defer func() { _ = lock.Unlock() }()
	}

	// A fresh run reprocesses everything but must keep records for
	// playlists it never touches, so the state is always loaded.
	state := exportstate.Load(lay.StatePath)
	if !opts.Resume {
		state.ResetRun()
	}
	logger = logger.With(logging.String(logging.FieldRunID, state.RunID))

	graph, err := collection.Load(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("%w: %v", export.ErrStructural, err)
	}

	copier := &transfer.Coordinator{CheckpointEvery: cfg.Export.CheckpointEvery}
	writer := &manifest.Writer{Ext: cfg.Export.ManifestExt}

	orch := export.New(graph, lay, state, copier, writer, logger, opts)
	stats, runErr := orch.Run(cmd.Context())
	printSummary(cmd, stats, opts.DryRun)
	return runErr
}

func printPreflight(cmd *cobra.Command, checks []preflight.Result) {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		status := "ok"
		if !check.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{check.Name, status, check.Detail})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{"Check", "Status", "Detail"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft}))
}

func printSummary(cmd *cobra.Command, stats exportstate.Stats, dryRun bool) {
	rows := [][]string{
		{"Playlists", strconv.Itoa(stats.PlaylistsTotal)},
		{"  completed", strconv.Itoa(stats.PlaylistsCompleted)},
		{"  skipped", strconv.Itoa(stats.PlaylistsSkipped)},
		{"  failed", strconv.Itoa(stats.PlaylistsFailed)},
		{"Tracks", strconv.Itoa(stats.TracksTotal)},
		{"  copied", strconv.Itoa(stats.TracksCopied)},
		{"  up to date", strconv.Itoa(stats.TracksSkipped)},
		{"  failed", strconv.Itoa(stats.TracksFailed)},
		{"Bytes copied", preflight.FormatBytes(uint64(stats.BytesCopied))},
	}
	title := "Export summary"
	if dryRun {
		title = "Dry run summary"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{title, "Count"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
}
