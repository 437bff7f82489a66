package tasks

import (
	"fmt"

	"github.com/desertthunder/ytbak/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchChannel Phase = iota
	FetchPlaylists
	FetchMeta
	FetchItems
	WriteFile
	JobDone
	JobFailed
)

func (p Phase) String() string {
	switch p {
	case FetchChannel:
		return "fetch_channel"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchMeta:
		return "fetch_meta"
	case FetchItems:
		return "fetch_items"
	case WriteFile:
		return "write_file"
	case JobDone:
		return "job_done"
	case JobFailed:
		return "job_failed"
	default:
		return ""
	}
}

func fetchChannelUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    1,
		Total:   1,
		Message: "Resolving channel...",
	}
}

func fetchPlaylistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d playlists", count),
	}
}

func fetchMetaUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMeta,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching metadata: %s", playlistID),
	}
}

func fetchItemsUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching items: %s", title),
	}
}

func jobDoneUpdate(done, total int, summary JobSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   JobDone,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", done, total, summary.Title, summary.ItemsCount),
		Data:    summary,
	}
}

func jobFailedUpdate(playlistID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   JobFailed,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✗ %s: %v", playlistID, err),
	}
}

func writeFileUpdate(info *services.PlaylistInfo) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFile,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing backup: %s", info.Title),
	}
}
