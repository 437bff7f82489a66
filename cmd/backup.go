package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/desertthunder/ytbak/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Playlists lists every playlist on the authenticated channel.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	summaries, err := r.engine.ListPlaylists(ctx, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(summaries)))
	for i, summary := range summaries {
		r.writePlain("%3d. %s (%s)\n", i+1, summary.Title, summary.ID)
	}

	return nil
}

// BackupRun backs up the playlists named as arguments, or every playlist
// when none are given.
func (r *Runner) BackupRun(ctx context.Context, cmd *cli.Command) error {
	outputRoot := cmd.String("output")
	if outputRoot == "" {
		outputRoot = r.config.Backup.OutputRoot
	}

	dir, err := shared.MakeRunDir(outputRoot, time.Now())
	if err != nil {
		return err
	}

	// The progress channel stays open: timed out jobs may still be
	// sending after the run resolves. The drainer instead flushes whatever
	// is buffered and exits before the summary block is printed.
	progress := make(chan tasks.ProgressUpdate, 50)
	stopDraining := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			select {
			case update := <-progress:
				r.writePlain("  %s\n", update.Message)
			case <-stopDraining:
				for {
					select {
					case update := <-progress:
						r.writePlain("  %s\n", update.Message)
					default:
						return
					}
				}
			}
		}
	}()

	ids := cmd.Args().Slice()

	var result *tasks.BackupResult
	var runErr error
	if len(ids) == 0 {
		result, runErr = r.engine.BackupAll(ctx, progress, dir)
	} else {
		result, runErr = r.engine.BackupSelected(ctx, progress, dir, ids)
	}

	close(stopDraining)
	<-drained

	if runErr != nil && !errors.Is(runErr, shared.ErrTimeout) {
		return runErr
	}

	if result.Outcome == tasks.TimedOut {
		r.writePlainln("⚠ Backup timed out: %d of %d playlists completed", len(result.Summaries), result.TotalRequested)
	} else {
		r.writePlainln("✓ Backup complete: %d playlists", len(result.Summaries))
	}

	for _, summary := range result.Summaries {
		r.writePlain("  %s (%d items)\n", summary.Title, summary.ItemsCount)
	}
	r.writePlain("\nOutput: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if cmd.Bool("open") {
		if err := shared.OpenFileExplorer(dir); err != nil {
			r.logger.Warnf("failed to open file explorer %v", err)
		}
	}

	return nil
}
