package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytbak/internal/formatter"
	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
)

// BackupResult contains the outcome of a backup run.
type BackupResult struct {
	Outcome         Outcome
	Summaries       []JobSummary // completion order, only jobs that reported in time
	TotalRequested  int
	OutputDirectory string
	ManifestPath    string
}

// BackupSelected backs up the given playlists into dir.
//
// One job runs per playlist id. Jobs run on the caller's context, not a
// deadline-bound child: when the run resolves TimedOut the stragglers keep
// going and their files still land on disk, they just miss the returned
// summaries. A job that fails never reports completion, so its absence
// surfaces as a TimedOut run.
func (e *BackupEngine) BackupSelected(ctx context.Context, progress chan<- ProgressUpdate, dir string, ids []string) (*BackupResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: provider not initialized", shared.ErrServiceUnavailable)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no playlists selected", shared.ErrMissingArgument)
	}

	join := newJoinState(len(ids))

	for _, id := range ids {
		go e.runJob(ctx, progress, join, dir, id)
	}

	outcome, waitErr := join.wait(ctx, e.joinTimeout)

	result := &BackupResult{
		Outcome:         outcome,
		Summaries:       join.snapshot(),
		TotalRequested:  len(ids),
		OutputDirectory: dir,
	}

	entries := make([]formatter.ManifestEntry, len(result.Summaries))
	for i, s := range result.Summaries {
		entries[i] = formatter.ManifestEntry{Title: s.Title, ItemsCount: s.ItemsCount, File: s.File}
	}
	manifestPath, err := formatter.WriteRunManifest(dir, entries)
	if err != nil {
		e.logger.Error("failed to write run manifest", "error", err)
	} else {
		result.ManifestPath = manifestPath
	}

	if outcome == TimedOut {
		return result, waitErr
	}
	return result, nil
}

// BackupAll backs up every playlist on the authenticated user's channel.
func (e *BackupEngine) BackupAll(ctx context.Context, progress chan<- ProgressUpdate, dir string) (*BackupResult, error) {
	summaries, err := e.ListPlaylists(ctx, progress)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}

	return e.BackupSelected(ctx, progress, dir, ids)
}

// runJob fetches one playlist's metadata and items, writes its backup file,
// and reports completion. Any failure logs, emits a JobFailed update, and
// leaves the join waiting.
func (e *BackupEngine) runJob(ctx context.Context, progress chan<- ProgressUpdate, join *joinState, dir, playlistID string) {
	jobID := shared.GenerateID()
	logger := shared.WithLogger(e.logger, "job", jobID, "playlist", playlistID)

	e.sendProgress(progress, fetchMetaUpdate(playlistID))

	info, err := e.svc.Playlist(ctx, playlistID)
	if err != nil {
		logger.Error("failed to fetch playlist metadata", "error", err)
		e.sendProgress(progress, jobFailedUpdate(playlistID, err))
		return
	}

	e.sendProgress(progress, fetchItemsUpdate(info.Title))

	items, err := collectPages(ctx, e, func(ctx context.Context, cursor *services.Cursor) (services.Page[services.Item], error) {
		return e.svc.PlaylistItemsPage(ctx, playlistID, cursor)
	})
	if err != nil {
		logger.Error("failed to fetch playlist items", "error", err)
		e.sendProgress(progress, jobFailedUpdate(playlistID, err))
		return
	}

	e.sendProgress(progress, writeFileUpdate(info))

	path, err := formatter.WriteBackupFile(dir, info, items, e.includeIDs)
	if err != nil {
		logger.Error("failed to write backup file", "error", err)
		e.sendProgress(progress, jobFailedUpdate(playlistID, err))
		return
	}

	summary := JobSummary{Title: info.Title, ItemsCount: len(items), File: path}
	done := join.complete(summary)

	logger.Info("backup complete", "items", len(items), "file", path)
	e.sendProgress(progress, jobDoneUpdate(done, join.expected, summary))
}
