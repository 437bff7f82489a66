package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/desertthunder/ytbak/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SelectView ViewState = iota
	ConfirmView
	BackupView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.BackupEngine
	outputRoot   string
	width        int
	height       int
	playlistList list.Model
	playlists    []services.PlaylistSummary
	selected     map[string]bool
	progressChan chan tasks.ProgressUpdate
	backupDone   chan backupCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.BackupResult
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsFetchedMsg struct {
	playlists []services.PlaylistSummary
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type backupCompleteMsg struct {
	result *tasks.BackupResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.BackupEngine, outputRoot string) *Model {
	return &Model{
		ctx:        ctx,
		view:       SelectView,
		engine:     engine,
		outputRoot: outputRoot,
		selected:   map[string]bool{},
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by fetching the channel's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SelectView:
			return m.handleSelectKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{summary: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "YouTube Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case backupCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SelectView:
		return m.renderSelect()
	case ConfirmView:
		return m.renderConfirm()
	case BackupView:
		return m.renderBackup()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.selected[item.summary.ID] = !m.selected[item.summary.ID]
			item.selected = m.selected[item.summary.ID]
			return m, m.playlistList.SetItem(m.playlistList.Index(), item)
		}
	case key.Matches(msg, m.keys.all):
		var cmds []tea.Cmd
		for i, li := range m.playlistList.Items() {
			if item, ok := li.(playlistItem); ok {
				m.selected[item.summary.ID] = true
				item.selected = true
				cmds = append(cmds, m.playlistList.SetItem(i, item))
			}
		}
		return m, tea.Batch(cmds...)
	case key.Matches(msg, m.keys.enter):
		if len(m.selectedIDs()) > 0 {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = SelectView
		return m, nil
	case "y":
		m.view = BackupView
		return m, m.startBackup()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = SelectView
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == SelectView {
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedIDs() []string {
	var ids []string
	for _, pl := range m.playlists {
		if m.selected[pl.ID] {
			ids = append(ids, pl.ID)
		}
	}
	return ids
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.engine.ListPlaylists(m.ctx, nil)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) startBackup() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan
	ids := m.selectedIDs()

	done := make(chan backupCompleteMsg, 1)
	go func() {
		dir, err := shared.MakeRunDir(m.outputRoot, time.Now())
		if err != nil {
			done <- backupCompleteMsg{err: err}
			return
		}
		result, err := m.engine.BackupSelected(m.ctx, progress, dir, ids)
		done <- backupCompleteMsg{result: result, err: err}
	}()
	m.backupDone = done

	return m.waitForProgress()
}

// waitForProgress races the next progress update against run completion.
// The progress channel is never closed: timed out jobs may still be sending.
func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	done := m.backupDone
	return func() tea.Msg {
		if progress == nil {
			return backupCompleteMsg{result: m.result, err: m.err}
		}

		select {
		case update := <-progress:
			return progressUpdateMsg(update)
		case msg := <-done:
			return msg
		}
	}
}

func (m *Model) renderSelect() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	count := len(m.selectedIDs())
	title := styles.title.Render(fmt.Sprintf("Back up %d playlists?", count))
	info := "\nFiles are written under " + m.outputRoot + "\n"

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderBackup() string {
	title := styles.title.Render("Backing Up Playlists")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchMeta:
		phase = "Fetching playlist metadata..."
	case tasks.FetchItems:
		phase = "Fetching playlist items..."
	case tasks.WriteFile:
		phase = "Writing backup file..."
	case tasks.JobDone:
		phase = fmt.Sprintf("Completed %d/%d", m.progress.Step, m.progress.Total)
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.result == nil {
		if m.err != nil {
			return styles.err.Render(fmt.Sprintf("Backup failed: %v\n\nPress r to retry, q to quit", m.err))
		}
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	var title string
	if m.result.Outcome == tasks.TimedOut {
		title = styles.warn.Render("Backup timed out")
	} else {
		title = styles.ok.Render("✓ Backup Complete!")
	}

	info := fmt.Sprintf("\n%d of %d playlists written to %s\n",
		len(m.result.Summaries), m.result.TotalRequested, m.result.OutputDirectory)
	for _, s := range m.result.Summaries {
		info += fmt.Sprintf("  %s (%d items)\n", s.Title, s.ItemsCount)
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
