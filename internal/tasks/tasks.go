package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit   = 5.0
	defaultJoinTimeout = 10 * time.Second
)

// BackupEngine runs playlist enumeration and backup jobs against a provider.
type BackupEngine struct {
	svc         services.Service
	logger      *log.Logger
	limiter     *rate.Limiter
	includeIDs  bool
	joinTimeout time.Duration
}

// BackupOpts contains configuration for creating a BackupEngine.
type BackupOpts struct {
	RateLimit      float64       // page requests per second, defaults to 5
	JoinTimeout    time.Duration // run deadline, defaults to 10s
	IncludeListIDs bool          // keep source list ids in backup entries
	Logger         *log.Logger
}

// NewBackupEngine creates a BackupEngine backed by the given provider.
func NewBackupEngine(svc services.Service, opts BackupOpts) *BackupEngine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.JoinTimeout <= 0 {
		opts.JoinTimeout = defaultJoinTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &BackupEngine{
		svc:         svc,
		logger:      opts.Logger,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		includeIDs:  opts.IncludeListIDs,
		joinTimeout: opts.JoinTimeout,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BackupEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// collectPages drains a paginated fetch, pacing each page request through the
// engine's rate limiter.
func collectPages[T any](ctx context.Context, e *BackupEngine, fetch services.FetchFunc[T]) ([]T, error) {
	return services.Collect(ctx, func(ctx context.Context, cursor *services.Cursor) (services.Page[T], error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return services.Page[T]{}, err
		}
		return fetch(ctx, cursor)
	})
}

// ListPlaylists enumerates the authenticated user's playlists, sorted
// case-insensitively by title. Ties between titles that differ only in case
// keep their arrival order.
func (e *BackupEngine) ListPlaylists(ctx context.Context, progress chan<- ProgressUpdate) ([]services.PlaylistSummary, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: provider not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchChannelUpdate())

	channelID, err := e.svc.MyChannelID(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := collectPages(ctx, e, func(ctx context.Context, cursor *services.Cursor) (services.Page[services.PlaylistSummary], error) {
		return e.svc.PlaylistsPage(ctx, channelID, cursor)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return strings.ToUpper(summaries[a].Title) < strings.ToUpper(summaries[b].Title)
	})

	e.sendProgress(progress, fetchPlaylistsUpdate(len(summaries)))
	return summaries, nil
}
