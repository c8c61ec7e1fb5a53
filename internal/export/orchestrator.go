// Package export drives a full playlist export run: selecting playlists,
// resolving and copying tracks, writing manifests, and persisting progress.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cratesync/internal/catalog"
	"cratesync/internal/collection"
	"cratesync/internal/exportstate"
	"cratesync/internal/layout"
	"cratesync/internal/logging"
	"cratesync/internal/manifest"
	"cratesync/internal/pathresolve"
	"cratesync/internal/transfer"
)

// progressEvery is the track interval for mid-playlist progress logs.
const progressEvery = 25

// Options selects and shapes a run.
type Options struct {
	// Resume skips playlists already completed in the persisted state.
	Resume bool
	// DryRun plans and resolves but performs no filesystem mutation.
	DryRun bool
	// Sample limits the run to the first N selected playlists; 0 means all.
	Sample int
	// Match keeps only playlists whose full hierarchical path, joined
	// with "/", contains this substring, case-insensitively.
	Match string
}

// Orchestrator runs one export against one destination.
type Orchestrator struct {
	graph     *collection.Graph
	layout    *layout.Layout
	state     *exportstate.File
	copier    *transfer.Coordinator
	manifests *manifest.Writer
	logger    *slog.Logger
	opts      Options
}

// New wires an orchestrator. logger may be nil.
func New(
	graph *collection.Graph,
	lay *layout.Layout,
	state *exportstate.File,
	copier *transfer.Coordinator,
	manifests *manifest.Writer,
	logger *slog.Logger,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		graph:     graph,
		layout:    lay,
		state:     state,
		copier:    copier,
		manifests: manifests,
		logger:    logging.NewComponentLogger(logger, "export"),
		opts:      opts,
	}
}

// plannedTrack pairs a catalog track with its resolved source and target.
type plannedTrack struct {
	track catalog.TrackRef
	src   string
	dst   string
}

// Run exports every selected playlist. Per-track and per-playlist failures
// become counters and log lines; only structural failures return an error.
// The returned stats are complete either way.
func (o *Orchestrator) Run(ctx context.Context) (exportstate.Stats, error) {
	var stats exportstate.Stats

	leaves, err := o.graph.Leaves(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: enumerate playlists: %v", ErrStructural, err)
	}
	selected := o.selectPlaylists(leaves)
	stats.PlaylistsTotal = len(selected)

	for _, leaf := range selected {
		if err := ctx.Err(); err != nil {
			return o.finish(stats), fmt.Errorf("%w: %v", ErrStructural, err)
		}
		o.exportPlaylist(ctx, leaf, &stats)
	}
	return o.finish(stats), nil
}

func (o *Orchestrator) finish(stats exportstate.Stats) exportstate.Stats {
	stats.BytesCopied = o.copier.BytesCopied()
	if !o.opts.DryRun {
		o.state.Stats = stats
		if err := o.state.Save(); err != nil {
			o.logger.Warn("final state save failed", logging.Error(err))
		}
	}
	return stats
}

func (o *Orchestrator) selectPlaylists(leaves []catalog.CollectionNode) []catalog.CollectionNode {
	selected := leaves
	if o.opts.Match != "" {
		match := strings.ToLower(o.opts.Match)
		selected = nil
		for _, leaf := range leaves {
			path := strings.Join(o.graph.FullPath(leaf.ID), "/")
			if strings.Contains(strings.ToLower(path), match) {
				selected = append(selected, leaf)
			}
		}
	}
	if o.opts.Sample > 0 && len(selected) > o.opts.Sample {
		selected = selected[:o.opts.Sample]
	}
	return selected
}

func (o *Orchestrator) exportPlaylist(ctx context.Context, leaf catalog.CollectionNode, stats *exportstate.Stats) {
	log := o.logger.With(logging.String(logging.FieldCollection, leaf.Name))

	if o.opts.Resume {
		if record, ok := o.state.CompletedRecord(leaf.ID); ok {
			log.Info("already completed, skipping",
				logging.Int("tracks", record.TracksTotal))
			stats.PlaylistsSkipped++
			stats.TracksTotal += record.TracksTotal
			stats.TracksSkipped += record.TracksTotal
			return
		}
	}

	tracks, err := o.graph.TracksOf(ctx, leaf.ID)
	if err != nil {
		log.Error("track listing failed", logging.Error(err))
		stats.PlaylistsFailed++
		return
	}
	if len(tracks) == 0 {
		log.Info("no tracks, skipping")
		stats.PlaylistsSkipped++
		return
	}
	stats.TracksTotal += len(tracks)

	planned, missing := o.plan(tracks, log)
	stats.TracksFailed += missing
	if len(planned) == 0 {
		log.Warn("no source files found, skipping",
			logging.Int("tracks", len(tracks)))
		stats.PlaylistsSkipped++
		return
	}

	hierarchy := o.graph.FullPath(leaf.ID)
	if o.opts.DryRun {
		o.planOnly(planned, log, stats)
		return
	}

	// Record the playlist as in progress before touching files so an
	// interrupted run retries it.
	o.state.Record(leaf.ID, exportstate.TransferRecord{
		Name:        leaf.Name,
		TracksTotal: len(tracks),
	})

	copied, skipped, failed, entries := o.copyTracks(leaf, len(tracks), missing, planned, log)
	stats.TracksCopied += copied
	stats.TracksSkipped += skipped
	stats.TracksFailed += failed

	manifestDir := o.layout.ManifestDir(parentSegments(hierarchy))
	manifestPath, err := o.manifests.Write(manifestDir, leaf.Name, hierarchy, entries)
	if err != nil {
		log.Error("manifest write failed", logging.Error(fmt.Errorf("%w: %v", ErrManifest, err)))
		o.state.Record(leaf.ID, exportstate.TransferRecord{
			Name:         leaf.Name,
			TracksTotal:  len(tracks),
			TracksCopied: copied,
			TracksFailed: failed + missing,
		})
		stats.PlaylistsFailed++
		return
	}

	record := exportstate.TransferRecord{
		Completed:    true,
		Name:         leaf.Name,
		TracksTotal:  len(tracks),
		TracksCopied: copied,
		TracksFailed: failed + missing,
		ManifestPath: relativeToRoot(o.layout.Root, manifestPath),
	}
	o.state.Record(leaf.ID, record)
	if err := o.state.Save(); err != nil {
		log.Warn("state save failed", logging.Error(err))
	}
	stats.PlaylistsCompleted++
	log.Info("playlist exported",
		logging.Int("copied", copied),
		logging.Int("skipped", skipped),
		logging.Int("failed", failed+missing))
}

// plan resolves every track to a source and destination, dropping tracks
// whose source file cannot be found.
func (o *Orchestrator) plan(tracks []catalog.TrackRef, log *slog.Logger) ([]plannedTrack, int) {
	var planned []plannedTrack
	missing := 0
	for _, track := range tracks {
		src := pathresolve.Resolve(track.FolderRef, track.FileRef)
		if src == "" || !fileExists(src) {
			missing++
			log.Warn("source file not found",
				logging.String("title", track.Title),
				logging.String("path", src))
			continue
		}
		planned = append(planned, plannedTrack{
			track: track,
			src:   src,
			dst:   o.layout.DestinationFor(src),
		})
	}
	return planned, missing
}

func (o *Orchestrator) planOnly(planned []plannedTrack, log *slog.Logger, stats *exportstate.Stats) {
	wouldCopy, wouldSkip := 0, 0
	for _, p := range planned {
		if samePath(p.src, p.dst) {
			wouldSkip++
			continue
		}
		wouldCopy++
	}
	stats.TracksCopied += wouldCopy
	stats.TracksSkipped += wouldSkip
	stats.PlaylistsCompleted++
	log.Info("dry run: playlist planned",
		logging.Int("would_copy", wouldCopy),
		logging.Int("up_to_date", wouldSkip))
}

func (o *Orchestrator) copyTracks(leaf catalog.CollectionNode, total, missing int, planned []plannedTrack, log *slog.Logger) (copied, skipped, failed int, entries []manifest.Entry) {
	// Checkpoints persist the counts so far, so an interrupted run leaves
	// real progress behind rather than a zeroed record. The callback fires
	// inside CopyIfNeeded after a copy succeeds but before the loop below
	// counts it, hence the extra one.
	o.copier.Checkpoint = func() error {
		o.state.Record(leaf.ID, exportstate.TransferRecord{
			Name:         leaf.Name,
			TracksTotal:  total,
			TracksCopied: copied + 1,
			TracksFailed: failed + missing,
		})
		return o.state.Save()
	}
	defer func() { o.copier.Checkpoint = nil }()

	for i, p := range planned {
		didCopy, err := o.copier.CopyIfNeeded(p.src, p.dst)
		if err != nil {
			failed++
			log.Warn("track copy failed",
				logging.String("title", p.track.Title),
				logging.Error(fmt.Errorf("%w: %v", ErrTransfer, err)))
			continue
		}
		if didCopy {
			copied++
		} else {
			skipped++
		}
		entries = append(entries, manifest.Entry{
			Title:  p.track.Title,
			Artist: p.track.Artist,
			Path:   p.dst,
		})
		if (i+1)%progressEvery == 0 {
			log.Info("progress",
				logging.Int("done", i+1),
				logging.Int("total", len(planned)))
		}
	}
	return copied, skipped, failed, entries
}

// parentSegments returns the hierarchy without the playlist's own name.
func parentSegments(hierarchy []string) []string {
	if len(hierarchy) == 0 {
		return nil
	}
	return hierarchy[:len(hierarchy)-1]
}

func relativeToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// samePath reports whether the destination already holds the source content
// as far as the size heuristic can tell.
func samePath(src, dst string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return srcInfo.Size() == dstInfo.Size()
}
