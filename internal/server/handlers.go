package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/desertthunder/ytbak/internal/tasks"
	"golang.org/x/oauth2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// AuthManager is the credential surface the handler needs. [auth.Session]
// satisfies this.
type AuthManager interface {
	EnsureValid(ctx context.Context) (*oauth2.Token, error)
	AuthURL(state string) (string, error)
	CompleteAuthorization(ctx context.Context, code string) (*oauth2.Token, error)
}

// Backuper runs playlist enumeration and backup jobs. [tasks.BackupEngine]
// satisfies this.
type Backuper interface {
	ListPlaylists(ctx context.Context, progress chan<- tasks.ProgressUpdate) ([]services.PlaylistSummary, error)
	BackupSelected(ctx context.Context, progress chan<- tasks.ProgressUpdate, dir string, ids []string) (*tasks.BackupResult, error)
}

// BackupHandler serves the playlist selection and backup pages.
type BackupHandler struct {
	session    AuthManager
	engine     Backuper
	outputRoot string
	logger     *log.Logger
	now        func() time.Time
}

// BackupHandlerOpts contains configuration for creating a BackupHandler.
type BackupHandlerOpts struct {
	Session    AuthManager
	Engine     Backuper
	OutputRoot string
	Logger     *log.Logger
	Now        func() time.Time // defaults to time.Now
}

// NewBackupHandler creates a BackupHandler.
func NewBackupHandler(opts BackupHandlerOpts) *BackupHandler {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &BackupHandler{
		session:    opts.Session,
		engine:     opts.Engine,
		outputRoot: opts.OutputRoot,
		logger:     opts.Logger,
		now:        opts.Now,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *BackupHandler) Routes() []string {
	return []string{"/", "/backup", "/authorize"}
}

// ServeHTTP dispatches to the page handlers.
func (h *BackupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.index(w, r)
	case "/authorize":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.authorize(w, r)
	case "/backup":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.backup(w, r)
	default:
		http.NotFound(w, r)
	}
}

type indexData struct {
	Playlists []services.PlaylistSummary
}

type authorizeData struct {
	AuthURL string
}

type resultData struct {
	Outcome   string
	TimedOut  bool
	Summaries []tasks.JobSummary
	Requested int
	Directory string
}

type errorData struct {
	Message string
}

// index lists the user's playlists, or prompts for authorization when no
// valid credential exists.
func (h *BackupHandler) index(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.EnsureValid(r.Context())
	if errors.Is(err, shared.ErrAuthorizationRequired) {
		// Manual paste flow, the state is not round-tripped.
		authURL, urlErr := h.session.AuthURL("")
		if urlErr != nil {
			h.renderError(w, http.StatusInternalServerError, urlErr)
			return
		}
		h.render(w, http.StatusOK, "authorize.html", authorizeData{AuthURL: authURL})
		return
	}
	if err != nil {
		h.renderError(w, http.StatusBadGateway, err)
		return
	}

	playlists, err := h.engine.ListPlaylists(r.Context(), nil)
	if err != nil {
		h.renderError(w, http.StatusBadGateway, err)
		return
	}

	h.render(w, http.StatusOK, "index.html", indexData{Playlists: playlists})
}

// authorize exchanges a pasted authorization code and redirects home.
func (h *BackupHandler) authorize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, err)
		return
	}

	code := r.FormValue("code")
	if code == "" {
		h.renderError(w, http.StatusBadRequest, shared.ErrMissingArgument)
		return
	}

	if _, err := h.session.CompleteAuthorization(r.Context(), code); err != nil {
		h.renderError(w, http.StatusBadRequest, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// backup runs the selected playlists and renders the outcome. A timed out
// run still renders its surviving summaries.
func (h *BackupHandler) backup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, err)
		return
	}

	ids := r.Form["id"]
	if len(ids) == 0 {
		h.renderError(w, http.StatusBadRequest, shared.ErrMissingArgument)
		return
	}

	dir, err := shared.MakeRunDir(h.outputRoot, h.now())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, err)
		return
	}

	result, err := h.engine.BackupSelected(r.Context(), nil, dir, ids)
	if err != nil && !errors.Is(err, shared.ErrTimeout) {
		h.renderError(w, http.StatusBadGateway, err)
		return
	}

	h.render(w, http.StatusOK, "result.html", resultData{
		Outcome:   result.Outcome.String(),
		TimedOut:  result.Outcome == tasks.TimedOut,
		Summaries: result.Summaries,
		Requested: result.TotalRequested,
		Directory: result.OutputDirectory,
	})
}

func (h *BackupHandler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func (h *BackupHandler) renderError(w http.ResponseWriter, status int, err error) {
	h.logger.Error("request failed", "error", err)
	h.render(w, status, "error.html", errorData{Message: err.Error()})
}
